package view

import (
	"github.com/MayEindra/olist-customer-retention/exec"
	"github.com/MayEindra/olist-customer-retention/plan"
	"github.com/MayEindra/olist-customer-retention/store"
)

// satisfaction_analysis: delivered orders only, one row per order. The
// status/delivered filter runs at the scan, before the inner joins to
// reviews and items, so a pending order is excluded by the filter rather
// than misattributed to a missing review. Reviews and items both fan out;
// the group stage collapses the cross product back to order grain and
// counts every item exactly once.

type SatisfactionRow struct {
	OrderID       string
	ReviewScore   int
	CustomerCity  *string
	CustomerState *string
	SellerCity    *string
	SellerState   *string
	CategoryName  *string

	ItemsInOrder     int
	TotalPrice       float64
	TotalFreight     float64
	TotalOrderValue  float64
	AvgProductWeight *float64

	DeliveryDelayDays  *float64
	ActualDeliveryDays *float64
	SameStateDelivery  int
}

func satisfactionQuery() *plan.Query {
	return &plan.Query{
		Target: plan.RelOrders,
		Filter: &plan.ScanFilter{
			Status:           "delivered",
			RequireDelivered: true,
		},
		Joins: []plan.JoinSpec{
			{
				Relation:    plan.RelReviews,
				Cardinality: plan.CardOneToMany,
				Kind:        plan.JoinInner,
			},
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
				Relation:    plan.RelCustomers,
				Cardinality: plan.CardOneToOne,
				Kind:        plan.JoinOuter,
			},
			{
				Relation:    plan.RelSellers,
				Cardinality: plan.CardManyToOne,
				Kind:        plan.JoinOuter,
			},
		},
		GroupBy: &plan.GroupBy{
			SingleValued: []string{
				"review_score",
				"customer_city",
				"customer_state",
				"seller_city",
				"seller_state",
				"product_category_name",
			},
		},
		Aggs: []int{
			plan.AggCountDistinctItems,
			plan.AggSumPrice,
			plan.AggSumFreight,
			plan.AggSumTotalValue,
			plan.AggAvgProductWeight,
		},
	}
}

func SatisfactionAnalysis(st *store.Store) ([]*SatisfactionRow, *exec.RunStats, error) {
	p, err := plan.Build(satisfactionQuery())
	if err != nil {
		return nil, nil, err
	}

	stats := &exec.RunStats{}
	groups := exec.GroupRows(exec.NewRowStream(st, p, stats), p, stats)

	out := []*SatisfactionRow{}
	for _, g := range groups {
		first := g.First
		rec := &SatisfactionRow{
			OrderID:          g.Key,
			ItemsInOrder:     g.ItemsInOrder,
			TotalPrice:       g.SumPrice,
			TotalFreight:     g.SumFreight,
			TotalOrderValue:  g.SumTotalValue,
			AvgProductWeight: g.AvgProductWeight,

			DeliveryDelayDays:  exec.DeliveryDelayDays(first.Order),
			ActualDeliveryDays: exec.ActualDeliveryDays(first.Order),
			SameStateDelivery:  exec.SameStateDelivery(first.Customer, first.Seller),
		}
		// the secondary group columns are first-value resolved; the first
		// expanded row of the group is exactly that value, typed
		if first.Review != nil {
			rec.ReviewScore = first.Review.Score
		}
		if first.Customer != nil {
			rec.CustomerCity = &first.Customer.City
			rec.CustomerState = &first.Customer.State
		}
		if first.Seller != nil {
			rec.SellerCity = &first.Seller.City
			rec.SellerState = &first.Seller.State
		}
		if first.Product != nil {
			rec.CategoryName = first.Product.CategoryName
		}
		out = append(out, rec)
	}
	return out, stats, nil
}

func satisfactionHeader() []string {
	return []string{
		"order_id",
		"review_score",
		"customer_city",
		"customer_state",
		"seller_city",
		"seller_state",
		"product_category_name",
		"items_in_order",
		"total_price",
		"total_freight",
		"total_order_value",
		"avg_product_weight_g",
		"delivery_delay_days",
		"actual_delivery_days",
		"same_state_delivery",
	}
}

func (self *SatisfactionRow) cells() []string {
	return []string{
		self.OrderID,
		fmtInt(self.ReviewScore),
		fmtStrPtr(self.CustomerCity),
		fmtStrPtr(self.CustomerState),
		fmtStrPtr(self.SellerCity),
		fmtStrPtr(self.SellerState),
		fmtStrPtr(self.CategoryName),
		fmtInt(self.ItemsInOrder),
		fmtFloat(self.TotalPrice),
		fmtFloat(self.TotalFreight),
		fmtFloat(self.TotalOrderValue),
		fmtFloatPtr(self.AvgProductWeight),
		fmtFloatPtr(self.DeliveryDelayDays),
		fmtFloatPtr(self.ActualDeliveryDays),
		fmtInt(self.SameStateDelivery),
	}
}
