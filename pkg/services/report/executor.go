package report

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
	"github.com/de-tools/biz-atlas/pkg/store/sqlstore"
)

// Executor runs all sub-queries of a plan concurrently and collects
// their result sets by query ID. Any sub-query failure fails the whole
// run; partial result sets are never returned.
type Executor struct {
	store sqlstore.Executor
}

func NewExecutor(st sqlstore.Executor) *Executor {
	return &Executor{store: st}
}

func (e *Executor) Execute(ctx context.Context, plan Plan, f domain.FilterSet) (store.ResultSets, error) {
	results := make(store.ResultSets, len(plan.Queries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(plan.Queries))
	for _, q := range plan.Queries {
		g.Go(func() error {
			query, args := q.Build(f)
			if query == "" {
				mu.Lock()
				results[q.ID] = store.ResultSet{}
				mu.Unlock()
				return nil
			}
			rs, err := e.store.Execute(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("%s query failed: %w", q.ID, err)
			}
			mu.Lock()
			results[q.ID] = rs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
