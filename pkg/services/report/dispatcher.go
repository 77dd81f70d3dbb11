package report

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

// ErrUnknownReport marks a request for a report type no plan is
// registered for.
var ErrUnknownReport = errors.New("unknown report type")

// Dispatcher resolves a report request end to end: plan lookup,
// concurrent sub-query execution and the merge step. Each request
// moves through received, executing and a terminal succeeded or
// failed state, logged as it transitions.
type Dispatcher interface {
	Run(ctx context.Context, report domain.ReportType, f domain.FilterSet) (domain.Report, error)
	SupportedReports() []domain.ReportType
}

type runner interface {
	Execute(ctx context.Context, plan Plan, f domain.FilterSet) (store.ResultSets, error)
}

type dispatcher struct {
	registry *Registry
	executor runner
}

func NewDispatcher(registry *Registry, executor runner) Dispatcher {
	return &dispatcher{registry: registry, executor: executor}
}

func (d *dispatcher) Run(ctx context.Context, report domain.ReportType, f domain.FilterSet) (domain.Report, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("report", string(report)).
		Str("date_range", string(f.DateRange)).
		Logger()
	logger.Debug().Msg("report request received")

	plan, err := d.registry.Get(report)
	if err != nil {
		logger.Warn().Err(err).Msg("report request failed")
		return nil, err
	}

	logger.Debug().Int("queries", len(plan.Queries)).Msg("report executing")
	started := time.Now()

	results, err := d.executor.Execute(ctx, plan, f)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(started)).Msg("report failed")
		return nil, err
	}

	merged, err := plan.Merge(f, results)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(started)).Msg("report failed")
		return nil, err
	}

	logger.Info().Dur("elapsed", time.Since(started)).Msg("report succeeded")
	return merged, nil
}

func (d *dispatcher) SupportedReports() []domain.ReportType {
	return d.registry.SupportedReports()
}
