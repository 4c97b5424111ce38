// Package catalog decodes the EDF, ESC and battery CSV catalogs and the
// optional baseline designs from a storage.Source.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/service"
	"github.com/autopeer-io/edfsizer/internal/sizer/storage"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

var _ service.CatalogRepository = (*Repository)(nil)

// Files names the catalog files inside a Source.
type Files struct {
	EDF     string
	ESC     string
	Battery string
	// Baseline is optional; empty disables it.
	Baseline string
}

// Repository implements service.CatalogRepository over CSV files.
type Repository struct {
	source storage.Source
	files  Files
}

func NewRepository(source storage.Source, files Files) *Repository {
	return &Repository{source: source, files: files}
}

// Catalog reads all three component catalogs. Any unreadable or invalid row
// fails the whole load.
func (r *Repository) Catalog(ctx context.Context) (model.Catalog, error) {
	edfs, err := load[edfRow](ctx, r.source, r.files.EDF, edfSchema)
	if err != nil {
		return model.Catalog{}, err
	}
	escs, err := load[escRow](ctx, r.source, r.files.ESC, escSchema)
	if err != nil {
		return model.Catalog{}, err
	}
	batteries, err := load[batteryRow](ctx, r.source, r.files.Battery, batterySchema)
	if err != nil {
		return model.Catalog{}, err
	}

	return model.Catalog{
		EDFs:      lo.Map(edfs, func(r edfRow, _ int) model.EDF { return r.ToEDF() }),
		ESCs:      lo.Map(escs, func(r escRow, _ int) model.ESC { return r.ToESC() }),
		Batteries: lo.Map(batteries, func(r batteryRow, _ int) model.Battery { return r.ToBattery() }),
	}, nil
}

// Baseline reads the reference designs. A missing baseline file is not an error.
func (r *Repository) Baseline(ctx context.Context) ([]model.CandidateSpec, error) {
	if r.files.Baseline == "" {
		return nil, nil
	}

	rows, err := load[baselineRow](ctx, r.source, r.files.Baseline, baselineSchema)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("No baseline designs found", "source", r.source.String(), "file", r.files.Baseline)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r baselineRow, _ int) model.CandidateSpec { return r.ToSpec() }), nil
}

func load[R any](ctx context.Context, src storage.Source, file string, sc schema) ([]R, error) {
	rc, err := src.Open(ctx, file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := decodeFile[R](rc, file, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from %s: %w", file, src, err)
	}
	return rows, nil
}
