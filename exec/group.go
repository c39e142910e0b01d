package exec

import (
	"github.com/MayEindra/olist-customer-retention/plan"
)

// The group stage. This is the one buffering point of the pipeline: memory
// is bounded by the number of distinct orders, not by the expanded row
// count. Groups come out in first-seen key order, which together with the
// store's load-order scan makes grouped views deterministic run to run.

// Group is one collapsed order with its aggregates. Aggregate fields are
// only filled when the plan asked for them; Columns carries the resolved
// single-valued group columns under their planner names.
type Group struct {
	Key     string // order_id
	First   *Row   // first expanded row of the group
	Columns map[string]string

	ItemsInOrder     int
	SumPrice         float64
	SumFreight       float64
	SumTotalValue    float64
	AvgProductWeight *float64 // nil when every item's weight is null
}

type groupAcc struct {
	group     *Group
	warned    map[string]bool
	seenItems map[int]bool
	weightSum float64
	weightN   int
}

// GroupRows drains the expanded stream and collapses it to one group per
// target key, applying the plan's aggregates and single-valued checks.
func GroupRows(
	rows *Stream,
	p *plan.Plan,
	stats *RunStats,
) []*Group {
	accs := make(map[string]*groupAcc)
	order := []string{}

	var aggVars []plan.AggVar
	if p.HasAgg() {
		aggVars = p.Agg.VarList
	}
	var singleValued []string
	if p.HasGroupBy() {
		singleValued = p.GroupBy.SingleValued
	}

	for r, ok := rows.Next(); ok; r, ok = rows.Next() {
		key := r.Order.OrderID
		acc := accs[key]
		if acc == nil {
			acc = &groupAcc{
				group: &Group{
					Key:     key,
					First:   r,
					Columns: make(map[string]string),
				},
				warned:    make(map[string]bool),
				seenItems: make(map[int]bool),
			}
			accs[key] = acc
			order = append(order, key)
		}
		acc.observeColumns(r, singleValued, stats)
		acc.observeItem(r, aggVars)
	}

	out := make([]*Group, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		acc.finish(aggVars)
		out = append(out, acc.group)
	}
	if stats != nil {
		stats.Groups = len(out)
	}
	return out
}

// single-valued columns: first-encountered value wins, a later conflicting
// value is an integrity warning (once per group and column), never an
// error. The source data implies 1:1 shapes it does not enforce, so the
// view has to produce a row regardless.
func (self *groupAcc) observeColumns(
	r *Row,
	singleValued []string,
	stats *RunStats,
) {
	for _, col := range singleValued {
		v := r.GroupColumn(col)
		cur, ok := self.group.Columns[col]
		if !ok {
			self.group.Columns[col] = v
			continue
		}
		if v != cur && !self.warned[col] {
			self.warned[col] = true
			if stats != nil {
				stats.warn("ambiguous " + col + " on order " + self.group.Key)
			}
		}
	}
}

// item-grained aggregates. Each distinct item identifier contributes once,
// so fan-out from a second 1:N relation (an order with several reviews)
// cannot double count an item's price or weight.
func (self *groupAcc) observeItem(
	r *Row,
	aggVars []plan.AggVar,
) {
	if r.Item == nil {
		return
	}
	if self.seenItems[r.Item.OrderItemID] {
		return
	}
	self.seenItems[r.Item.OrderItemID] = true

	for _, av := range aggVars {
		switch av.AggType {
		case plan.AggCountDistinctItems:
			self.group.ItemsInOrder++

		case plan.AggSumPrice:
			self.group.SumPrice += r.Item.Price

		case plan.AggSumFreight:
			self.group.SumFreight += r.Item.FreightValue

		case plan.AggSumTotalValue:
			self.group.SumTotalValue += r.Item.Price + r.Item.FreightValue

		case plan.AggAvgProductWeight:
			// average-excluding-null: a null weight contributes to neither
			// the numerator nor the denominator
			if r.Product != nil && r.Product.WeightG != nil {
				self.weightSum += *r.Product.WeightG
				self.weightN++
			}
		}
	}
}

func (self *groupAcc) finish(aggVars []plan.AggVar) {
	for _, av := range aggVars {
		if av.AggType == plan.AggAvgProductWeight && self.weightN > 0 {
			avg := self.weightSum / float64(self.weightN)
			self.group.AvgProductWeight = &avg
		}
	}
}
