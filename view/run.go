package view

import (
	"strconv"
	"time"

	"github.com/MayEindra/olist-customer-retention/exec"
	"github.com/MayEindra/olist-customer-retention/plan"
	"github.com/MayEindra/olist-customer-retention/store"
)

const (
	NameOrdersWithReviews    = "orders_with_reviews"
	NameFullDenormalized     = "full_denormalized"
	NameSatisfactionAnalysis = "satisfaction_analysis"
)

func Names() []string {
	return []string{
		NameOrdersWithReviews,
		NameFullDenormalized,
		NameSatisfactionAnalysis,
	}
}

// Result is the rendered-ready form of one view run: header + stringified
// records, plus the run diagnostics. The typed builders stay the primary
// API; this is for the CLI and anything else that only needs cells.
type Result struct {
	Name    string
	Header  []string
	Records [][]string
	Stats   *exec.RunStats
}

func Run(name string, st *store.Store) (*Result, error) {
	switch name {
	case NameOrdersWithReviews:
		rows, stats, err := OrdersWithReviews(st)
		if err != nil {
			return nil, err
		}
		out := &Result{Name: name, Header: orderReviewHeader(), Stats: stats}
		for _, r := range rows {
			out.Records = append(out.Records, r.cells())
		}
		return out, nil

	case NameFullDenormalized:
		rows, stats, err := FullDenormalized(st)
		if err != nil {
			return nil, err
		}
		out := &Result{Name: name, Header: fullHeader(), Stats: stats}
		for _, r := range rows {
			out.Records = append(out.Records, r.cells())
		}
		return out, nil

	case NameSatisfactionAnalysis:
		rows, stats, err := SatisfactionAnalysis(st)
		if err != nil {
			return nil, err
		}
		out := &Result{Name: name, Header: satisfactionHeader(), Stats: stats}
		for _, r := range rows {
			out.Records = append(out.Records, r.cells())
		}
		return out, nil

	default:
		return nil, &plan.ConfigurationError{
			Stage:   "view",
			Message: "unknown view: " + name,
		}
	}
}

// PlanFor builds (and validates) the named view's plan without touching
// any data, mainly for plan dumps.
func PlanFor(name string) (*plan.Plan, error) {
	switch name {
	case NameOrdersWithReviews:
		return plan.Build(ordersWithReviewsQuery())
	case NameFullDenormalized:
		return plan.Build(fullDenormalizedQuery())
	case NameSatisfactionAnalysis:
		return plan.Build(satisfactionQuery())
	default:
		return nil, &plan.ConfigurationError{
			Stage:   "view",
			Message: "unknown view: " + name,
		}
	}
}

// ----------------------------------------------------------------------------
// cell formatting. Null stays an empty cell, timestamps use the dataset's
// own layout, floats keep their shortest exact form.

const timeLayout = "2006-01-02 15:04:05"

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtTime(*t)
}

func fmtStrPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fmtInt(i int) string { return strconv.Itoa(i) }

func fmtIntPtr(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}
