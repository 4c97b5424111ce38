// Package service runs the full search over one catalog snapshot: compose
// packs, enumerate powertrains and extract the Pareto frontier.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/autopeer-io/edfsizer/internal/pkg/metrics"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/pareto"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/powertrain"
)

// CatalogRepository supplies the component catalogs and the optional baseline
// designs an evaluation runs against.
type CatalogRepository interface {
	Catalog(ctx context.Context) (model.Catalog, error)
	Baseline(ctx context.Context) ([]model.CandidateSpec, error)
}

type Service struct {
	repo    CatalogRepository
	policy  powertrain.Policy
	workers int

	now func() time.Time
}

// New returns a Service. workers > 1 enumerates EDFs concurrently.
func New(repo CatalogRepository, policy powertrain.Policy, workers int) *Service {
	return &Service{
		repo:    repo,
		policy:  policy,
		workers: workers,
		now:     time.Now,
	}
}

// Evaluate loads the catalog and returns every accepted candidate together
// with its frontier. An empty result is not an error.
func (s *Service) Evaluate(ctx context.Context) (result *model.Result, err error) {
	logger := logr.FromContextOrDiscard(ctx).WithName("service")
	start := s.now()
	defer func() {
		var candidates, frontier int
		if result != nil {
			candidates, frontier = len(result.Candidates), len(result.Frontier)
		}
		metrics.ObserveEvaluation(start, candidates, frontier, err)
	}()

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	baseline, err := s.repo.Baseline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	logger.V(1).Info("Evaluating catalog",
		"edfs", len(catalog.EDFs), "escs", len(catalog.ESCs), "batteries", len(catalog.Batteries))

	candidates, err := powertrain.EnumerateParallel(logr.NewContext(ctx, logger), catalog, s.policy, s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate powertrains: %w", err)
	}
	frontier := pareto.Specs(candidates)

	result = &model.Result{
		ID:          uuid.New(),
		GeneratedAt: s.now(),
		Candidates:  nonNil(candidates),
		Frontier:    nonNil(frontier),
		Baseline:    nonNil(baseline),
	}

	logger.Info("Evaluation finished",
		"id", result.ID,
		"candidates", len(result.Candidates),
		"frontier", len(result.Frontier),
		"elapsed", s.now().Sub(start))
	return result, nil
}

// nonNil keeps empty results encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
