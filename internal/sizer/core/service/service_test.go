package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/pareto"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/powertrain"
)

type fakeRepo struct {
	catalog     model.Catalog
	baseline    []model.CandidateSpec
	catalogErr  error
	baselineErr error
}

func (f *fakeRepo) Catalog(context.Context) (model.Catalog, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeRepo) Baseline(context.Context) ([]model.CandidateSpec, error) {
	return f.baseline, f.baselineErr
}

func catalog() model.Catalog {
	return model.Catalog{
		EDFs: []model.EDF{
			{Name: "E1", BatteryType: 6, Size: 90, Thrust: 3000, Weight: 300, CurrentConsumption: 80},
			{Name: "E2", BatteryType: 6, Size: 70, Thrust: 2200, Weight: 250, CurrentConsumption: 60},
		},
		ESCs: []model.ESC{{Name: "S1", CellsMin: 4, CellsMax: 8, Current: 100, Weight: 50}},
		Batteries: []model.Battery{
			{Name: "A", Cells: 6, Capacity: 5000, CRating: 50, MaxCurrent: 250, Weight: 700},
			{Name: "B", Cells: 3, Capacity: 5000, CRating: 50, MaxCurrent: 250, Weight: 360},
		},
	}
}

func TestEvaluate(t *testing.T) {
	baseline := []model.CandidateSpec{{EDFName: "current", MaxPayload: 500, MinFlyTime: 7}}
	svc := New(&fakeRepo{catalog: catalog(), baseline: baseline}, powertrain.DefaultPolicy(), 1)

	res, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.NotEmpty(t, res.Candidates)
	assert.Equal(t, pareto.Specs(res.Candidates), res.Frontier)
	assert.Equal(t, baseline, res.Baseline)
	for _, f := range res.Frontier {
		assert.Contains(t, res.Candidates, f)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	repo := &fakeRepo{catalog: catalog()}

	first, err := New(repo, powertrain.DefaultPolicy(), 1).Evaluate(context.Background())
	require.NoError(t, err)
	second, err := New(repo, powertrain.DefaultPolicy(), 4).Evaluate(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.ElementsMatch(t, first.Candidates, second.Candidates)
	assert.ElementsMatch(t, first.Frontier, second.Frontier)
}

func TestEvaluateEmptyIsNotAnError(t *testing.T) {
	svc := New(&fakeRepo{}, powertrain.DefaultPolicy(), 1)

	res, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Candidates)
	assert.NotNil(t, res.Frontier)
	assert.Empty(t, res.Frontier)
	assert.NotNil(t, res.Baseline)
}

func TestEvaluatePropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(&fakeRepo{catalogErr: boom}, powertrain.DefaultPolicy(), 1).Evaluate(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to load catalog")

	_, err = New(&fakeRepo{catalog: catalog(), baselineErr: boom}, powertrain.DefaultPolicy(), 1).Evaluate(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to load baseline")
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&fakeRepo{catalog: catalog()}, powertrain.DefaultPolicy(), 4).Evaluate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
