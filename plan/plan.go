package plan

import (
	"fmt"
)

// Relations of the fixed analytical schema. Geolocation shows up twice
// since it can be attached through either the customer or the seller zip
// prefix, and a plan may carry both.
type Relation int

const (
	RelOrders Relation = iota
	RelOrderItems
	RelReviews
	RelPayments
	RelCustomers
	RelProducts
	RelSellers
	RelCustomerGeolocation
	RelSellerGeolocation
	RelCategoryTranslations
)

func (self Relation) String() string {
	switch self {
	case RelOrders:
		return "orders"
	case RelOrderItems:
		return "order_items"
	case RelReviews:
		return "reviews"
	case RelPayments:
		return "payments"
	case RelCustomers:
		return "customers"
	case RelProducts:
		return "products"
	case RelSellers:
		return "sellers"
	case RelCustomerGeolocation:
		return "geolocation(customer)"
	case RelSellerGeolocation:
		return "geolocation(seller)"
	case RelCategoryTranslations:
		return "category_translations"
	default:
		return "unknown"
	}
}

// Join cardinality, viewed from the row in flight towards the relation
// being attached.
type Cardinality int

const (
	CardNone Cardinality = iota // not specified, always a configuration error
	CardOneToOne
	CardOneToMany
	CardManyToOne
)

func (self Cardinality) String() string {
	switch self {
	case CardOneToOne:
		return "1:1"
	case CardOneToMany:
		return "1:N"
	case CardManyToOne:
		return "N:1"
	default:
		return "unspecified"
	}
}

type JoinKind int

const (
	JoinInner JoinKind = iota // row dropped when the right side is absent
	JoinOuter                 // row kept, right side nil
)

func (self JoinKind) String() string {
	if self == JoinInner {
		return "inner"
	}
	return "outer"
}

// Lookup keys. Each key is carried by exactly one relation (its provenance,
// see keySource), which is what drives join ordering.
type Key int

const (
	KeyNone Key = iota
	KeyOrderID
	KeyCustomerID
	KeyProductID
	KeySellerID
	KeyCustomerZip
	KeySellerZip
	KeyCategoryName
)

func (self Key) String() string {
	switch self {
	case KeyOrderID:
		return "order_id"
	case KeyCustomerID:
		return "customer_id"
	case KeyProductID:
		return "product_id"
	case KeySellerID:
		return "seller_id"
	case KeyCustomerZip:
		return "customer_zip_code_prefix"
	case KeySellerZip:
		return "seller_zip_code_prefix"
	case KeyCategoryName:
		return "product_category_name"
	default:
		return "none"
	}
}

// JoinSpec is the caller-facing description of one relation to attach:
// which relation, on which key, with what cardinality and optionality.
// ResolveFirst opts a 1:N relation out of fan-out by taking the first match
// only; the geolocation joins need it since the zip prefix is explicitly
// non-unique.
type JoinSpec struct {
	Relation     Relation
	Key          Key
	Cardinality  Cardinality
	Kind         JoinKind
	ResolveFirst bool
}

// JoinStep is one planned, ordered join. Source is the relation whose
// record carries the lookup key at execution time.
type JoinStep struct {
	Spec   JoinSpec
	Source Relation
	FanOut bool // true when this step can multiply rows
}

// ScanFilter restricts the target scan before any join runs.
type ScanFilter struct {
	Status           string // non-empty: order status must equal this
	RequireDelivered bool   // delivered-to-customer timestamp must be set
}

func (self *ScanFilter) IsZero() bool {
	return self == nil || (self.Status == "" && !self.RequireDelivered)
}

// GroupBy collapses fan-out to one row per target key. SingleValued lists
// the row columns the query assumes constant within a group; the group
// stage verifies the assumption and falls back to first-value + warning.
type GroupBy struct {
	SingleValued []string
}

// Aggregate accumulators available to the group stage.
const (
	AggCountDistinctItems = iota
	AggSumPrice
	AggSumFreight
	AggSumTotalValue
	AggAvgProductWeight
)

func aggTypeToName(i int) string {
	switch i {
	case AggCountDistinctItems:
		return "count(distinct order_item_id)"
	case AggSumPrice:
		return "sum(price)"
	case AggSumFreight:
		return "sum(freight_value)"
	case AggSumTotalValue:
		return "sum(price+freight_value)"
	case AggAvgProductWeight:
		return "avg(product_weight_g)"
	default:
		return "unknown"
	}
}

type AggVar struct {
	AggType int
}

func (self *AggVar) AggName() string { return aggTypeToName(self.AggType) }

type Agg struct {
	VarList []AggVar
}

// Query is the input to Build: the declarative description of one view's
// shape against the fixed schema.
type Query struct {
	Target  Relation
	Filter  *ScanFilter
	Joins   []JoinSpec
	GroupBy *GroupBy
	Aggs    []int
}

type Plan struct {
	Target  Relation
	Filter  *ScanFilter
	Joins   []*JoinStep
	GroupBy *GroupBy
	Agg     *Agg
}

func (self *Plan) HasFilter() bool  { return !self.Filter.IsZero() }
func (self *Plan) HasGroupBy() bool { return self.GroupBy != nil }
func (self *Plan) HasAgg() bool     { return self.Agg != nil && len(self.Agg.VarList) > 0 }

// ----------------------------------------------------------------------------
// error taxonomy. A configuration error is fatal and always surfaces before
// any row is read, since Build touches no data.

type ConfigurationError struct {
	Stage   string
	Message string
}

func (self *ConfigurationError) Error() string {
	return fmt.Sprintf("stage(%s): %s", self.Stage, self.Message)
}

func cfgErr(stage string, f string, args ...interface{}) error {
	return &ConfigurationError{
		Stage:   stage,
		Message: fmt.Sprintf(f, args...),
	}
}
