package pack

import (
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

func battery(name string, cells int, capacity, cRating float64) model.Battery {
	return model.Battery{
		Name:       name,
		Cells:      cells,
		Capacity:   capacity,
		CRating:    cRating,
		MaxCurrent: capacity / 1000 * cRating,
		Weight:     float64(cells) * 100,
	}
}

func names(units []model.Battery) []string {
	return lo.Map(units, func(b model.Battery, _ int) string { return b.Name })
}

func TestComposeSingleBattery(t *testing.T) {
	a := model.Battery{Name: "A", Cells: 6, Capacity: 5000, CRating: 50, MaxCurrent: 250, Weight: 700}

	packs := slices.Collect(Compose(6, []model.Battery{a}, DefaultLimits()))

	require.Len(t, packs, 4)
	for i, p := range packs {
		assert.Equal(t, i+1, p.NumParallel)
		assert.Equal(t, []model.Battery{a}, p.Units)
		assert.Equal(t, 6, p.Cells())
		assert.Equal(t, float64(i+1)*250, p.MaxCurrent())
	}
}

func TestComposeNoMatch(t *testing.T) {
	batteries := []model.Battery{battery("A", 4, 5000, 50), battery("B", 4, 4000, 50)}

	assert.Empty(t, slices.Collect(Compose(7, batteries, DefaultLimits())))
	assert.Empty(t, slices.Collect(Compose(6, nil, DefaultLimits())))
	assert.Empty(t, slices.Collect(Compose(6, batteries, Limits{MaxSeriesUnits: 0, MaxParallel: 4})))
}

func TestSeriesStacksRejectsMixedCapacityAndRating(t *testing.T) {
	batteries := []model.Battery{
		battery("A", 3, 5000, 50),
		battery("B", 3, 4000, 50),
		battery("C", 3, 5000, 25),
	}

	stacks := slices.Collect(SeriesStacks(6, batteries, DefaultLimits()))

	got := lo.Map(stacks, func(s []model.Battery, _ int) []string { return names(s) })
	assert.ElementsMatch(t, [][]string{{"A", "A"}, {"B", "B"}, {"C", "C"}}, got)
}

func TestSeriesStacksDeduplicatesAcrossSubsets(t *testing.T) {
	batteries := []model.Battery{
		battery("A", 3, 5000, 50),
		battery("B", 3, 5000, 50),
		battery("C", 3, 5000, 50),
	}

	stacks := slices.Collect(SeriesStacks(6, batteries, DefaultLimits()))

	got := lo.Map(stacks, func(s []model.Battery, _ int) []string { return names(s) })
	assert.ElementsMatch(t, [][]string{
		{"A", "A"}, {"A", "B"}, {"B", "B"},
		{"A", "C"}, {"C", "C"},
		{"B", "C"},
	}, got)
}

func TestSeriesStacksIdentityIsCatalogRow(t *testing.T) {
	a := battery("A", 3, 5000, 50)

	stacks := slices.Collect(SeriesStacks(6, []model.Battery{a, a}, DefaultLimits()))

	// rows 0+0, 0+1 and 1+1 are distinct stacks even though they look alike
	assert.Len(t, stacks, 3)
}

func TestSeriesStacksBatteryTypeLimit(t *testing.T) {
	batteries := []model.Battery{
		battery("A", 6, 5000, 50),
		battery("B", 4, 5000, 50),
		battery("C", 2, 5000, 50),
		battery("D", 3, 5000, 50),
	}

	distinct := func(s []model.Battery) int { return len(lo.Uniq(names(s))) }

	for stack := range SeriesStacks(12, batteries, DefaultLimits()) {
		assert.LessOrEqual(t, distinct(stack), 2, names(stack))
	}

	three := false
	for stack := range SeriesStacks(13, batteries, DefaultLimits()) {
		assert.LessOrEqual(t, distinct(stack), 3, names(stack))
		if distinct(stack) == 3 {
			three = true
		}
	}
	assert.True(t, three, "targets above 12 cells may mix three battery types")
}

func TestComposeInvariants(t *testing.T) {
	batteries := []model.Battery{
		battery("3S-5000", 3, 5000, 50),
		battery("4S-5000", 4, 5000, 50),
		battery("6S-5000", 6, 5000, 50),
		battery("6S-4000", 6, 4000, 50),
		battery("2S-5000-25C", 2, 5000, 25),
		battery("4S-5000-25C", 4, 5000, 25),
	}

	for _, target := range []int{6, 8, 10, 12, 14} {
		for p := range Compose(target, batteries, DefaultLimits()) {
			assert.Equal(t, target, p.Cells())
			assert.LessOrEqual(t, len(p.Units), 5)
			for _, u := range p.Units {
				assert.Equal(t, p.Units[0].Capacity, u.Capacity)
				assert.Equal(t, p.Units[0].CRating, u.CRating)
			}

			one := model.BatteryPack{NumParallel: 1, Units: p.Units}
			k := float64(p.NumParallel)
			assert.Equal(t, k*one.Capacity(), p.Capacity())
			assert.Equal(t, k*one.MaxCurrent(), p.MaxCurrent())
			assert.InDelta(t, k*one.Weight(), p.Weight(), 1e-9)
		}
	}
}

func TestComposeIsRederivable(t *testing.T) {
	batteries := []model.Battery{
		battery("A", 3, 5000, 50),
		battery("B", 3, 5000, 50),
		battery("C", 6, 5000, 50),
	}
	first := slices.Collect(Compose(6, batteries, DefaultLimits()))
	second := slices.Collect(Compose(6, batteries, DefaultLimits()))
	assert.Equal(t, first, second)
}

func TestComposeStopsEarly(t *testing.T) {
	batteries := []model.Battery{battery("A", 3, 5000, 50), battery("B", 3, 5000, 50)}

	n := 0
	for range Compose(6, batteries, DefaultLimits()) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestMaxBatteryTypes(t *testing.T) {
	assert.Equal(t, 2, MaxBatteryTypes(6))
	assert.Equal(t, 2, MaxBatteryTypes(12))
	assert.Equal(t, 3, MaxBatteryTypes(13))
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, slices.Collect(combinations(4, 2)))
	assert.Equal(t, [][]int{{0, 1, 2}}, slices.Collect(combinations(3, 3)))
	assert.Empty(t, slices.Collect(combinations(2, 3)))
}

func TestMultisets(t *testing.T) {
	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 2}, {0, 2, 2}, {2, 2, 2}}, slices.Collect(multisets([]int{0, 2}, 3)))
	assert.Equal(t, [][]int{{5}}, slices.Collect(multisets([]int{5}, 1)))
	assert.Empty(t, slices.Collect(multisets(nil, 2)))
}

func TestPackName(t *testing.T) {
	a := battery("A", 3, 5000, 50)
	b := battery("B", 3, 5000, 50)
	p := model.BatteryPack{NumParallel: 2, Units: []model.Battery{a, b, a}}

	assert.Equal(t, "battery combination 2 in parallel: 2 x A 1 x B", p.Name())
}

func TestPackNameKeepsCatalogRowsApart(t *testing.T) {
	a := battery("A", 3, 5000, 50)
	batteries := []model.Battery{a, a}

	var got []string
	for p := range Compose(6, batteries, Limits{MaxSeriesUnits: 2, MaxParallel: 1}) {
		got = append(got, p.Name())
	}

	assert.Equal(t, []string{
		"battery combination 1 in parallel: 2 x A",
		"battery combination 1 in parallel: 1 x A 1 x A",
		"battery combination 1 in parallel: 2 x A",
	}, got)
}

func TestComposeRecordsRows(t *testing.T) {
	batteries := []model.Battery{battery("A", 4, 5000, 50), battery("B", 2, 5000, 50)}

	for p := range Compose(6, batteries, DefaultLimits()) {
		require.Len(t, p.Rows, len(p.Units))
		for i, r := range p.Rows {
			assert.Equal(t, batteries[r], p.Units[i])
		}
	}
}
