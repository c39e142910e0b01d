package view

import (
	"time"

	"github.com/MayEindra/olist-customer-retention/exec"
	"github.com/MayEindra/olist-customer-retention/plan"
	"github.com/MayEindra/olist-customer-retention/store"
)

// full_denormalized: one row per order item, the widest shape. Items are
// inner (an order without items carries nothing to report at item grain);
// product, seller, customer and the category translation are outer, so a
// dangling reference null-fills instead of eating the row.

type FullRow struct {
	OrderID               string
	OrderItemID           int
	OrderStatus           string
	PurchaseTimestamp     *time.Time
	ApprovedAt            *time.Time
	DeliveredCarrierDate  *time.Time
	DeliveredCustomerDate *time.Time
	EstimatedDeliveryDate time.Time

	CustomerID       *string
	CustomerUniqueID *string
	CustomerCity     *string
	CustomerState    *string

	ProductID           string
	CategoryName        *string
	CategoryNameEnglish *string

	SellerID    string
	SellerCity  *string
	SellerState *string

	ShippingLimitDate *time.Time
	Price             float64
	FreightValue      float64
	TotalItemValue    float64
}

func fullDenormalizedQuery() *plan.Query {
	return &plan.Query{
		Target: plan.RelOrders,
		Joins: []plan.JoinSpec{
			{
				Relation:    plan.RelOrderItems,
				Cardinality: plan.CardOneToMany,
				Kind:        plan.JoinInner,
			},
			{
				Relation:    plan.RelProducts,
				Cardinality: plan.CardManyToOne,
				Kind:        plan.JoinOuter,
			},
			{
				Relation:    plan.RelSellers,
				Cardinality: plan.CardManyToOne,
				Kind:        plan.JoinOuter,
			},
			{
				Relation:    plan.RelCustomers,
				Cardinality: plan.CardOneToOne,
				Kind:        plan.JoinOuter,
			},
			{
				Relation:    plan.RelCategoryTranslations,
				Cardinality: plan.CardManyToOne,
				Kind:        plan.JoinOuter,
			},
		},
	}
}

func FullDenormalized(st *store.Store) ([]*FullRow, *exec.RunStats, error) {
	p, err := plan.Build(fullDenormalizedQuery())
	if err != nil {
		return nil, nil, err
	}

	stats := &exec.RunStats{}
	rows := exec.NewRowStream(st, p, stats)

	out := []*FullRow{}
	for r, ok := rows.Next(); ok; r, ok = rows.Next() {
		rec := &FullRow{
			OrderID:               r.Order.OrderID,
			OrderItemID:           r.Item.OrderItemID,
			OrderStatus:           r.Order.Status,
			PurchaseTimestamp:     r.Order.PurchaseTimestamp,
			ApprovedAt:            r.Order.ApprovedAt,
			DeliveredCarrierDate:  r.Order.DeliveredCarrierDate,
			DeliveredCustomerDate: r.Order.DeliveredCustomerDate,
			EstimatedDeliveryDate: r.Order.EstimatedDeliveryDate,
			ProductID:             r.Item.ProductID,
			SellerID:              r.Item.SellerID,
			ShippingLimitDate:     r.Item.ShippingLimitDate,
			Price:                 r.Item.Price,
			FreightValue:          r.Item.FreightValue,
			TotalItemValue:        r.Item.Price + r.Item.FreightValue,
		}
		if r.Customer != nil {
			rec.CustomerID = &r.Customer.CustomerID
			rec.CustomerUniqueID = &r.Customer.UniqueID
			rec.CustomerCity = &r.Customer.City
			rec.CustomerState = &r.Customer.State
		}
		if r.Product != nil {
			// category stays the raw product value even when the
			// translation misses, a row never loses it
			rec.CategoryName = r.Product.CategoryName
		}
		if r.Translation != nil {
			rec.CategoryNameEnglish = &r.Translation.EnglishName
		}
		if r.Seller != nil {
			rec.SellerCity = &r.Seller.City
			rec.SellerState = &r.Seller.State
		}
		out = append(out, rec)
	}
	return out, stats, nil
}

func fullHeader() []string {
	return []string{
		"order_id",
		"order_item_id",
		"order_status",
		"order_purchase_timestamp",
		"order_approved_at",
		"order_delivered_carrier_date",
		"order_delivered_customer_date",
		"order_estimated_delivery_date",
		"customer_id",
		"customer_unique_id",
		"customer_city",
		"customer_state",
		"product_id",
		"product_category_name",
		"product_category_name_english",
		"seller_id",
		"seller_city",
		"seller_state",
		"shipping_limit_date",
		"price",
		"freight_value",
		"total_item_value",
	}
}

func (self *FullRow) cells() []string {
	return []string{
		self.OrderID,
		fmtInt(self.OrderItemID),
		self.OrderStatus,
		fmtTimePtr(self.PurchaseTimestamp),
		fmtTimePtr(self.ApprovedAt),
		fmtTimePtr(self.DeliveredCarrierDate),
		fmtTimePtr(self.DeliveredCustomerDate),
		fmtTime(self.EstimatedDeliveryDate),
		fmtStrPtr(self.CustomerID),
		fmtStrPtr(self.CustomerUniqueID),
		fmtStrPtr(self.CustomerCity),
		fmtStrPtr(self.CustomerState),
		self.ProductID,
		fmtStrPtr(self.CategoryName),
		fmtStrPtr(self.CategoryNameEnglish),
		self.SellerID,
		fmtStrPtr(self.SellerCity),
		fmtStrPtr(self.SellerState),
		fmtTimePtr(self.ShippingLimitDate),
		fmtFloat(self.Price),
		fmtFloat(self.FreightValue),
		fmtFloat(self.TotalItemValue),
	}
}
