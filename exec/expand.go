package exec

import (
	"github.com/MayEindra/olist-customer-retention/plan"
	"github.com/MayEindra/olist-customer-retention/store"
)

// Row expansion: execute the planned scan + join steps against the store,
// streaming. Each stage pulls from the one before it, so no relation is
// materialized wide; the only buffering in the whole pipeline sits in the
// group stage.

type rowStream interface {
	next() (*Row, bool)
}

// Stream is the public face of an expanded row sequence. Single pass.
type Stream struct {
	src rowStream
}

func (self *Stream) Next() (*Row, bool) { return self.src.next() }

// Collect drains the stream. Convenience for tests and small runs.
func (self *Stream) Collect() []*Row {
	out := []*Row{}
	for r, ok := self.next(); ok; r, ok = self.next() {
		out = append(out, r)
	}
	return out
}

func (self *Stream) next() (*Row, bool) { return self.src.next() }

// NewRowStream wires the scan stage and one join stage per planned step.
// The plan is assumed built (and therefore validated) by the plan package.
func NewRowStream(
	st *store.Store,
	p *plan.Plan,
	stats *RunStats,
) *Stream {
	var cur rowStream = &scanStage{
		store:  st,
		filter: p.Filter,
		stats:  stats,
	}
	for _, step := range p.Joins {
		cur = &joinStage{
			store: st,
			step:  step,
			up:    cur,
			stats: stats,
		}
	}
	return &Stream{src: &countStage{up: cur, stats: stats}}
}

// ----------------------------------------------------------------------------
// scan stage: walk the target relation in load order, filter-then-join.

type scanStage struct {
	store  *store.Store
	filter *plan.ScanFilter
	stats  *RunStats
	cursor int
}

func (self *scanStage) next() (*Row, bool) {
	for self.cursor < len(self.store.Orders) {
		o := self.store.Orders[self.cursor]
		self.cursor++
		if !self.match(o) {
			continue
		}
		if self.stats != nil {
			self.stats.RowsScanned++
		}
		return &Row{Order: o}, true
	}
	return nil, false
}

func (self *scanStage) match(o *store.Order) bool {
	if self.filter.IsZero() {
		return true
	}
	if self.filter.Status != "" && o.Status != self.filter.Status {
		return false
	}
	if self.filter.RequireDelivered && o.DeliveredCustomerDate == nil {
		return false
	}
	return true
}

// ----------------------------------------------------------------------------
// join stage: attach one relation per upstream row. Fan-out matches are
// queued so the stage stays pull-based.

type joinStage struct {
	store *store.Store
	step  *plan.JoinStep
	up    rowStream
	stats *RunStats
	queue []*Row
}

func (self *joinStage) next() (*Row, bool) {
	for {
		if len(self.queue) > 0 {
			r := self.queue[0]
			self.queue = self.queue[1:]
			return r, true
		}
		r, ok := self.up.next()
		if !ok {
			return nil, false
		}
		out := self.attach(r)
		if len(out) == 0 {
			continue // inner join, right side empty: row dropped by design
		}
		self.queue = out[1:]
		return out[0], true
	}
}

// attach produces the joined row set for one upstream row: n rows for a
// fan-out match, one row for a lookup hit or an outer miss, zero rows for
// an inner miss.
func (self *joinStage) attach(r *Row) []*Row {
	switch self.step.Spec.Relation {
	case plan.RelOrderItems:
		items := self.store.ItemsByOrder(r.Order.OrderID)
		return fanOut(r, len(items), self.step.Spec.Kind, func(c *Row, i int) {
			c.Item = items[i]
		})

	case plan.RelReviews:
		reviews := self.store.ReviewsByOrder(r.Order.OrderID)
		return fanOut(r, len(reviews), self.step.Spec.Kind, func(c *Row, i int) {
			c.Review = reviews[i]
		})

	case plan.RelPayments:
		payments := self.store.PaymentsByOrder(r.Order.OrderID)
		return fanOut(r, len(payments), self.step.Spec.Kind, func(c *Row, i int) {
			c.Payment = payments[i]
		})

	case plan.RelCustomers:
		c := self.store.CustomerByID(r.Order.CustomerID)
		if c == nil {
			self.orphan(r)
		}
		return self.lookup(r, c == nil, func(out *Row) { out.Customer = c })

	case plan.RelProducts:
		var p *store.Product
		if r.Item != nil {
			p = self.store.ProductByID(r.Item.ProductID)
			if p == nil {
				self.orphan(r)
			}
		}
		return self.lookup(r, p == nil, func(out *Row) { out.Product = p })

	case plan.RelSellers:
		var s *store.Seller
		if r.Item != nil {
			s = self.store.SellerByID(r.Item.SellerID)
			if s == nil {
				self.orphan(r)
			}
		}
		return self.lookup(r, s == nil, func(out *Row) { out.Seller = s })

	case plan.RelCustomerGeolocation:
		var g *store.Geolocation
		if r.Customer != nil {
			g = self.store.FirstGeolocationByZip(r.Customer.ZipPrefix)
		}
		return self.lookup(r, g == nil, func(out *Row) { out.CustomerGeo = g })

	case plan.RelSellerGeolocation:
		var g *store.Geolocation
		if r.Seller != nil {
			g = self.store.FirstGeolocationByZip(r.Seller.ZipPrefix)
		}
		return self.lookup(r, g == nil, func(out *Row) { out.SellerGeo = g })

	case plan.RelCategoryTranslations:
		var t *store.CategoryTranslation
		if r.Product != nil && r.Product.CategoryName != nil {
			t = self.store.TranslationByCategory(*r.Product.CategoryName)
		}
		// an untranslated category must never drop a row, so no orphan
		// accounting here even on an inner plan
		return self.lookup(r, t == nil, func(out *Row) { out.Translation = t })

	default:
		return []*Row{r}
	}
}

// a to-one lookup: hit or outer miss keeps the row, inner miss drops it
func (self *joinStage) lookup(
	r *Row,
	miss bool,
	set func(*Row),
) []*Row {
	if miss && self.step.Spec.Kind == plan.JoinInner {
		return nil
	}
	out := r.clone()
	set(out)
	return []*Row{out}
}

// the upstream row references a key the right relation does not carry.
// Null fill already handles it; just surface the count.
func (self *joinStage) orphan(r *Row) {
	if self.stats != nil {
		self.stats.warn(
			"orphan " + self.step.Spec.Relation.String() + " ref on order " + r.Order.OrderID,
		)
	}
}

func fanOut(
	r *Row,
	n int,
	kind plan.JoinKind,
	set func(*Row, int),
) []*Row {
	if n == 0 {
		if kind == plan.JoinInner {
			return nil
		}
		return []*Row{r.clone()}
	}
	out := make([]*Row, 0, n)
	for i := 0; i < n; i++ {
		c := r.clone()
		set(c, i)
		out = append(out, c)
	}
	return out
}

// ----------------------------------------------------------------------------
// trailing stage, only bumps the expansion counter

type countStage struct {
	up    rowStream
	stats *RunStats
}

func (self *countStage) next() (*Row, bool) {
	r, ok := self.up.next()
	if ok && self.stats != nil {
		self.stats.RowsExpanded++
	}
	return r, ok
}
