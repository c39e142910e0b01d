package plan

// keySource maps each lookup key to the relation whose record carries it.
// A join step becomes runnable the moment its key's source relation is
// part of the row in flight.
func keySource(k Key) Relation {
	switch k {
	case KeyOrderID, KeyCustomerID:
		return RelOrders
	case KeyProductID, KeySellerID:
		return RelOrderItems
	case KeyCustomerZip:
		return RelCustomers
	case KeySellerZip:
		return RelSellers
	case KeyCategoryName:
		return RelProducts
	default:
		return RelOrders
	}
}

// DefaultKey returns the natural lookup key for a relation, used when a
// JoinSpec leaves Key unset.
func DefaultKey(r Relation) Key {
	switch r {
	case RelOrderItems, RelReviews, RelPayments:
		return KeyOrderID
	case RelCustomers:
		return KeyCustomerID
	case RelProducts:
		return KeyProductID
	case RelSellers:
		return KeySellerID
	case RelCustomerGeolocation:
		return KeyCustomerZip
	case RelSellerGeolocation:
		return KeySellerZip
	case RelCategoryTranslations:
		return KeyCategoryName
	default:
		return KeyNone
	}
}

func isGeolocation(r Relation) bool {
	return r == RelCustomerGeolocation || r == RelSellerGeolocation
}

// group columns the group stage knows how to read off a row
var groupColumns = map[string]bool{
	"review_score":          true,
	"customer_city":         true,
	"customer_state":        true,
	"seller_city":           true,
	"seller_state":          true,
	"product_category_name": true,
}

func IsGroupColumn(name string) bool { return groupColumns[name] }

// ----------------------------------------------------------------------------
// plan building

type planner struct {
	query *Query
	out   *Plan
}

func Build(q *Query) (*Plan, error) {
	p := &planner{
		query: q,
		out: &Plan{
			Target: q.Target,
			Filter: q.Filter,
		},
	}
	if err := p.plan(); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (self *planner) plan() error {
	if err := self.checkTarget(); err != nil {
		return err
	}
	specs, err := self.checkJoins()
	if err != nil {
		return err
	}
	if err := self.planJoinOrder(specs); err != nil {
		return err
	}
	if err := self.planGroupBy(); err != nil {
		return err
	}
	return self.planAgg()
}

func (self *planner) checkTarget() error {
	if self.query.Target != RelOrders {
		return cfgErr("target", "unsupported target relation: %s", self.query.Target)
	}
	return nil
}

// validate each join spec in isolation: cardinality must be declared, the
// key must belong to the relation, geolocation must opt into first-match
// resolution since its key is non-unique.
func (self *planner) checkJoins() ([]JoinSpec, error) {
	seen := make(map[Relation]bool)
	out := []JoinSpec{}

	for _, spec := range self.query.Joins {
		if spec.Relation == RelOrders {
			return nil, cfgErr("join", "target relation cannot join itself")
		}
		if seen[spec.Relation] {
			return nil, cfgErr("join", "relation %s joined twice", spec.Relation)
		}
		seen[spec.Relation] = true

		if spec.Cardinality == CardNone {
			return nil, cfgErr("join", "relation %s has no cardinality", spec.Relation)
		}
		if spec.Key == KeyNone {
			spec.Key = DefaultKey(spec.Relation)
		}
		if spec.Key != DefaultKey(spec.Relation) {
			return nil, cfgErr(
				"join",
				"relation %s cannot be joined on key %s",
				spec.Relation,
				spec.Key,
			)
		}
		if isGeolocation(spec.Relation) && !spec.ResolveFirst {
			return nil, cfgErr(
				"join",
				"relation %s is non-unique per zip prefix, ResolveFirst is required",
				spec.Relation,
			)
		}
		out = append(out, spec)
	}
	return out, nil
}

// order the join steps by key provenance. Repeated passes over the pending
// specs, appending every step whose key source is already part of the row;
// a pass that makes no progress means some spec's key can never be
// satisfied with the joins given.
func (self *planner) planJoinOrder(specs []JoinSpec) error {
	joined := map[Relation]bool{RelOrders: true}
	pending := specs

	for len(pending) > 0 {
		rest := []JoinSpec{}
		progress := false

		for _, spec := range pending {
			src := keySource(spec.Key)
			if !joined[src] {
				rest = append(rest, spec)
				continue
			}
			self.out.Joins = append(self.out.Joins, &JoinStep{
				Spec:   spec,
				Source: src,
				FanOut: spec.Cardinality == CardOneToMany && !spec.ResolveFirst,
			})
			joined[spec.Relation] = true
			progress = true
		}

		if !progress {
			return cfgErr(
				"join-order",
				"relation %s joins on %s but nothing in the plan provides it",
				rest[0].Relation,
				rest[0].Key,
			)
		}
		pending = rest
	}
	return nil
}

func (self *planner) planGroupBy() error {
	gb := self.query.GroupBy
	if gb == nil {
		return nil
	}
	for _, col := range gb.SingleValued {
		if !IsGroupColumn(col) {
			return cfgErr("group-by", "unknown group column: %s", col)
		}
	}
	self.out.GroupBy = &GroupBy{
		SingleValued: append([]string{}, gb.SingleValued...),
	}
	return nil
}

func (self *planner) planAgg() error {
	if len(self.query.Aggs) == 0 {
		return nil
	}
	if self.out.GroupBy == nil {
		return cfgErr("agg", "aggregation requires a group by")
	}
	agg := &Agg{}
	for _, ty := range self.query.Aggs {
		if aggTypeToName(ty) == "unknown" {
			return cfgErr("agg", "unknown aggregate type: %d", ty)
		}
		agg.VarList = append(agg.VarList, AggVar{AggType: ty})
	}
	self.out.Agg = agg
	return nil
}
