package exec

import (
	"time"

	"github.com/MayEindra/olist-customer-retention/store"
)

// shared test fixture helpers

func mustTime(s string) time.Time {
	out, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return out
}

func tp(s string) *time.Time {
	t := mustTime(s)
	return &t
}

func sp(s string) *string { return &s }

func fp(v float64) *float64 { return &v }

func order(id string, status string) *store.Order {
	return &store.Order{
		OrderID:               id,
		CustomerID:            "c-" + id,
		Status:                status,
		PurchaseTimestamp:     tp("2023-01-01 10:00:00"),
		EstimatedDeliveryDate: mustTime("2023-01-10 00:00:00"),
	}
}

func delivered(id string) *store.Order {
	o := order(id, "delivered")
	o.DeliveredCustomerDate = tp("2023-01-12 00:00:00")
	return o
}

func item(orderID string, n int, price float64, freight float64) *store.OrderItem {
	return &store.OrderItem{
		OrderID:      orderID,
		OrderItemID:  n,
		ProductID:    "p1",
		SellerID:     "s1",
		Price:        price,
		FreightValue: freight,
	}
}

func review(id string, orderID string, score int) *store.Review {
	return &store.Review{
		ReviewID: id,
		OrderID:  orderID,
		Score:    score,
	}
}
