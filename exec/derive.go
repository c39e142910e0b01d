package exec

import (
	"time"

	"github.com/MayEindra/olist-customer-retention/store"
)

// Per-row derived scalars. These depend on single rows only, no group
// context, so they are computed at projection time and stay valid whether
// or not the view aggregates.

const hoursPerDay = 24.0

// DeliveryDelayDays is delivered-to-customer minus estimated delivery, in
// fractional days. Positive means late. Nil when the order was never
// delivered.
func DeliveryDelayDays(o *store.Order) *float64 {
	if o.DeliveredCustomerDate == nil || o.EstimatedDeliveryDate.IsZero() {
		return nil
	}
	return daysBetween(o.EstimatedDeliveryDate, *o.DeliveredCustomerDate)
}

// ActualDeliveryDays is delivered-to-customer minus purchase, fractional
// days. Nil when either timestamp is missing.
func ActualDeliveryDays(o *store.Order) *float64 {
	if o.DeliveredCustomerDate == nil || o.PurchaseTimestamp == nil {
		return nil
	}
	return daysBetween(*o.PurchaseTimestamp, *o.DeliveredCustomerDate)
}

func daysBetween(from time.Time, to time.Time) *float64 {
	d := to.Sub(from).Hours() / hoursPerDay
	return &d
}

// SameStateDelivery is 1 when customer and seller state match, else 0. A
// missing side yields 0, matching what SQL CASE does when NULL meets the
// equality: NULL is never equal, not even to NULL.
func SameStateDelivery(c *store.Customer, s *store.Seller) int {
	if c == nil || s == nil {
		return 0
	}
	if c.State == "" || s.State == "" {
		return 0
	}
	if c.State == s.State {
		return 1
	}
	return 0
}
