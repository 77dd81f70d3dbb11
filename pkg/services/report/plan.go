package report

import (
	"fmt"
	"sort"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

// querySpec is one named sub-query of a report plan. Build composes
// the final query text and bound args from the filter set; returning
// an empty query skips the sub-query (its result set stays empty),
// which is how plans drop previous-period queries for windows with no
// predecessor.
type querySpec struct {
	ID    string
	Build func(f domain.FilterSet) (string, []any)
}

// Plan declares everything one report type needs: its sub-queries
// (independent of each other at the store level, so they may run
// concurrently) and the merge step that joins their results.
type Plan struct {
	Report  domain.ReportType
	Queries []querySpec
	Merge   func(f domain.FilterSet, rs store.ResultSets) (domain.Report, error)
}

// Registry holds the static plan for every report type. Adding a
// report type means registering one more plan here, nothing else.
type Registry struct {
	plans map[domain.ReportType]Plan
}

func NewRegistry() *Registry {
	r := &Registry{plans: make(map[domain.ReportType]Plan)}
	for _, plan := range []Plan{
		overviewPlan(),
		salesPlan(),
		salesAnalyticsPlan(),
		salesTerritoryPlan(),
		customerAnalyticsPlan(),
		productListPlan(),
		productsPlan(),
		categoriesPlan(),
		inventoryPlan(),
		hrPlan(),
		purchasingPlan(),
		purchaseOrdersPlan(),
		vendorsPlan(),
		vendorPerformancePlan(),
		financialPlan(),
	} {
		r.plans[plan.Report] = plan
	}
	return r
}

func (r *Registry) Get(report domain.ReportType) (Plan, error) {
	plan, ok := r.plans[report]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownReport, report)
	}
	return plan, nil
}

func (r *Registry) SupportedReports() []domain.ReportType {
	reports := make([]domain.ReportType, 0, len(r.plans))
	for report := range r.plans {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i] < reports[j] })
	return reports
}
