package exec

import (
	"strconv"

	"github.com/MayEindra/olist-customer-retention/store"
)

// Row is the wide record in flight through the pipeline: one pointer slot
// per attachable relation. A nil slot is an outer-join null fill, never a
// defaulted value, so projections can tell "absent" from "empty".
type Row struct {
	Order       *store.Order
	Item        *store.OrderItem
	Review      *store.Review
	Payment     *store.Payment
	Customer    *store.Customer
	Product     *store.Product
	Seller      *store.Seller
	CustomerGeo *store.Geolocation
	SellerGeo   *store.Geolocation
	Translation *store.CategoryTranslation
}

func (self *Row) clone() *Row {
	c := *self
	return &c
}

// GroupColumn reads one of the planner's known group columns off the row
// as text, empty string for null. Text form is deliberate: the group stage
// only ever compares these for equality, same trick as hashing a group key
// through string concatenation.
func (self *Row) GroupColumn(name string) string {
	switch name {
	case "review_score":
		if self.Review != nil {
			return strconv.Itoa(self.Review.Score)
		}
		return ""
	case "customer_city":
		if self.Customer != nil {
			return self.Customer.City
		}
		return ""
	case "customer_state":
		if self.Customer != nil {
			return self.Customer.State
		}
		return ""
	case "seller_city":
		if self.Seller != nil {
			return self.Seller.City
		}
		return ""
	case "seller_state":
		if self.Seller != nil {
			return self.Seller.State
		}
		return ""
	case "product_category_name":
		if self.Product != nil && self.Product.CategoryName != nil {
			return *self.Product.CategoryName
		}
		return ""
	default:
		return ""
	}
}
