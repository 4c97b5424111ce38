package sizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/pack"
	"github.com/autopeer-io/edfsizer/pkg/options"
)

func newConfig(dir string) *Config {
	c := &Config{
		CatalogOptions: options.NewCatalogOptions(),
		S3Options:      options.NewS3Options(),
		PolicyOptions:  options.NewPolicyOptions(),
		HttpOptions:    options.NewHttpOptions(),
	}
	c.CatalogOptions.Dir = dir
	return c
}

func writeCatalog(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"edf.csv":     "edf_name,battery_type,size,thrust,weight,current_consumption\nE1,6,90,3000,300,80\n",
		"esc.csv":     "esc_name,battery_cells_min,battery_cells_max,current,weight\nS1,4,8,100,50\n",
		"battery.csv": "battery_name,cells,capacity,c_rating,max_current,weight\nA,6,5000,50,250,700\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestPolicyFromOptions(t *testing.T) {
	c := newConfig(t.TempDir())
	c.PolicyOptions.MaxParallel = 2
	c.PolicyOptions.MinFlyTime = 7

	p := c.Policy()
	assert.Equal(t, []int{3, 4}, p.MotorCounts)
	assert.Equal(t, 7.0, p.MinFlyTime)
	assert.Equal(t, pack.Limits{MaxSeriesUnits: 5, MaxParallel: 2}, p.Pack)
}

func TestNewServiceEvaluatesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir)

	svc, err := newConfig(dir).NewService(context.Background())
	require.NoError(t, err)

	res, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	// 3 motors with parallel 1..4, 4 motors with parallel 2..4
	assert.Len(t, res.Candidates, 7)
	assert.NotEmpty(t, res.Frontier)
	assert.Empty(t, res.Baseline)
}

func TestNewServerWithWatch(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir)
	c := newConfig(dir)
	c.CatalogOptions.Watch = true

	s, err := c.NewServer(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewServiceMissingDir(t *testing.T) {
	_, err := newConfig(filepath.Join(t.TempDir(), "nope")).NewService(context.Background())
	assert.Error(t, err)
}
