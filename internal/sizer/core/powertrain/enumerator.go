// Package powertrain cross-combines EDFs, ESCs and battery packs into
// candidate drone powertrains and keeps the ones that satisfy the policy.
package powertrain

import (
	"context"
	"iter"
	"slices"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/pack"
)

// Enumerate yields one CandidateSpec per accepted (EDF, ESC, pack, motor
// count) combination, iterating EDF × ESC × packs(EDF) × motor counts in
// catalog order. An incompatible catalog yields nothing.
func Enumerate(catalog model.Catalog, policy Policy) iter.Seq[model.CandidateSpec] {
	return func(yield func(model.CandidateSpec) bool) {
		for _, e := range catalog.EDFs {
			for spec := range enumerateEDF(e, catalog.ESCs, catalog.Batteries, policy) {
				if !yield(spec) {
					return
				}
			}
		}
	}
}

func enumerateEDF(e model.EDF, escs []model.ESC, batteries []model.Battery, policy Policy) iter.Seq[model.CandidateSpec] {
	return func(yield func(model.CandidateSpec) bool) {
		for _, s := range escs {
			// ESC checks do not depend on the pack; skip composing packs for
			// controllers that can never pass.
			if !s.AcceptsCells(e.BatteryType) || e.CurrentConsumption > s.Current {
				continue
			}
			for p := range pack.Compose(e.BatteryType, batteries, policy.Pack) {
				for _, motors := range policy.MotorCounts {
					spec := Derive(e, s, p, motors, policy.AdditionalWeight)
					if !Accept(e, s, p, motors, spec, policy) {
						continue
					}
					if !yield(spec) {
						return
					}
				}
			}
		}
	}
}

// EnumerateParallel evaluates the catalog with up to workers goroutines, one
// EDF per task. The result equals slices.Collect(Enumerate(catalog, policy)).
func EnumerateParallel(ctx context.Context, catalog model.Catalog, policy Policy, workers int) ([]model.CandidateSpec, error) {
	logger := logr.FromContextOrDiscard(ctx).WithName("powertrain")

	if workers <= 1 {
		return slices.Collect(Enumerate(catalog, policy)), nil
	}

	shards := make([][]model.CandidateSpec, len(catalog.EDFs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, e := range catalog.EDFs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var out []model.CandidateSpec
			for spec := range enumerateEDF(e, catalog.ESCs, catalog.Batteries, policy) {
				if err := ctx.Err(); err != nil {
					return err
				}
				out = append(out, spec)
			}
			shards[i] = out
			logger.V(2).Info("EDF evaluated", "edf", e.Name, "accepted", len(out))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(shards...), nil
}
