package plan

import (
	"fmt"
	"strings"
)

// Printing the plan out, for testing, debugging, visualization purpose etc ...

func (self *Plan) Print() string {
	buf := &strings.Builder{}
	self.printScan(buf)
	self.printJoins(buf)
	self.printGroupBy(buf)
	self.printAgg(buf)
	return buf.String()
}

func (self *Plan) printScan(
	buf *strings.Builder,
) {
	buf.WriteString("##> Scan\n")
	buf.WriteString(fmt.Sprintf("Target: %s\n", self.Target))
	if !self.HasFilter() {
		buf.WriteString("Filter: --\n")
	} else {
		cond := []string{}
		if self.Filter.Status != "" {
			cond = append(cond, fmt.Sprintf("order_status == %q", self.Filter.Status))
		}
		if self.Filter.RequireDelivered {
			cond = append(cond, "order_delivered_customer_date != null")
		}
		buf.WriteString(fmt.Sprintf("Filter: %s\n", strings.Join(cond, " and ")))
	}
}

func (self *Plan) printJoins(
	buf *strings.Builder,
) {
	for idx, j := range self.Joins {
		buf.WriteString("##> Join\n")
		buf.WriteString(fmt.Sprintf("Index: %d\n", idx))
		buf.WriteString(fmt.Sprintf("Relation: %s\n", j.Spec.Relation))
		buf.WriteString(fmt.Sprintf("Key: %s\n", j.Spec.Key))
		buf.WriteString(fmt.Sprintf("Source: %s\n", j.Source))
		buf.WriteString(fmt.Sprintf("Cardinality: %s\n", j.Spec.Cardinality))
		buf.WriteString(fmt.Sprintf("Kind: %s\n", j.Spec.Kind))
		buf.WriteString(fmt.Sprintf("FanOut: %v\n", j.FanOut))
	}
}

func (self *Plan) printGroupBy(
	buf *strings.Builder,
) {
	groupBy := self.GroupBy
	buf.WriteString("##> GroupBy\n")
	if groupBy == nil {
		buf.WriteString("--\n")
	} else {
		buf.WriteString("Key: order_id\n")
		for idx, col := range groupBy.SingleValued {
			buf.WriteString(fmt.Sprintf("SingleValued[%d]: %s\n", idx, col))
		}
	}
}

func (self *Plan) printAgg(
	buf *strings.Builder,
) {
	agg := self.Agg
	buf.WriteString("##> Agg\n")
	if agg == nil {
		buf.WriteString("--\n")
	} else {
		for idx, avar := range agg.VarList {
			buf.WriteString(fmt.Sprintf("Var[%d]: %s\n", idx, avar.AggName()))
		}
	}
}
