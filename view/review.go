package view

import (
	"time"

	"github.com/MayEindra/olist-customer-retention/exec"
	"github.com/MayEindra/olist-customer-retention/plan"
	"github.com/MayEindra/olist-customer-retention/store"
)

// orders_with_reviews: every order, outer joined to its reviews. One row
// per (order, review) pair; an order with k reviews shows up k times, an
// order with none shows up once with the review side null.

type OrderReviewRow struct {
	OrderID           string
	CustomerID        string
	OrderStatus       string
	PurchaseTimestamp *time.Time

	ReviewID        *string
	ReviewScore     *int
	CommentTitle    *string
	CommentMessage  *string
	CreationDate    *time.Time
	AnswerTimestamp *time.Time
}

func ordersWithReviewsQuery() *plan.Query {
	return &plan.Query{
		Target: plan.RelOrders,
		Joins: []plan.JoinSpec{
			{
				Relation:    plan.RelReviews,
				Cardinality: plan.CardOneToMany,
				Kind:        plan.JoinOuter,
			},
		},
	}
}

func OrdersWithReviews(st *store.Store) ([]*OrderReviewRow, *exec.RunStats, error) {
	p, err := plan.Build(ordersWithReviewsQuery())
	if err != nil {
		return nil, nil, err
	}

	stats := &exec.RunStats{}
	rows := exec.NewRowStream(st, p, stats)

	out := []*OrderReviewRow{}
	for r, ok := rows.Next(); ok; r, ok = rows.Next() {
		rec := &OrderReviewRow{
			OrderID:           r.Order.OrderID,
			CustomerID:        r.Order.CustomerID,
			OrderStatus:       r.Order.Status,
			PurchaseTimestamp: r.Order.PurchaseTimestamp,
		}
		if r.Review != nil {
			id := r.Review.ReviewID
			score := r.Review.Score
			rec.ReviewID = &id
			rec.ReviewScore = &score
			rec.CommentTitle = r.Review.CommentTitle
			rec.CommentMessage = r.Review.CommentMessage
			rec.CreationDate = r.Review.CreationDate
			rec.AnswerTimestamp = r.Review.AnswerTimestamp
		}
		out = append(out, rec)
	}
	return out, stats, nil
}

func orderReviewHeader() []string {
	return []string{
		"order_id",
		"customer_id",
		"order_status",
		"order_purchase_timestamp",
		"review_id",
		"review_score",
		"review_comment_title",
		"review_comment_message",
		"review_creation_date",
		"review_answer_timestamp",
	}
}

func (self *OrderReviewRow) cells() []string {
	return []string{
		self.OrderID,
		self.CustomerID,
		self.OrderStatus,
		fmtTimePtr(self.PurchaseTimestamp),
		fmtStrPtr(self.ReviewID),
		fmtIntPtr(self.ReviewScore),
		fmtStrPtr(self.CommentTitle),
		fmtStrPtr(self.CommentMessage),
		fmtTimePtr(self.CreationDate),
		fmtTimePtr(self.AnswerTimestamp),
	}
}
