// Package pack enumerates the battery packs that can feed a given cell count.
//
// A pack is a series stack of battery units, optionally replicated in
// parallel. Stacks are drawn as multisets from a bounded number of distinct
// battery types, must be series compatible (equal capacity and C rating) and
// must hit the target cell count exactly. The search is exhaustive; the
// combinatorics are only acceptable because catalogs hold tens of entries.
package pack

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

// Limits bounds the pack search.
type Limits struct {
	// MaxSeriesUnits is the deepest series stack considered.
	MaxSeriesUnits int

	// MaxParallel is the largest parallel count considered. Counts run from
	// 1 to MaxParallel inclusive.
	MaxParallel int
}

// DefaultLimits returns 5 units in series and up to 4 strings in parallel.
func DefaultLimits() Limits {
	return Limits{MaxSeriesUnits: 5, MaxParallel: 4}
}

// MaxBatteryTypes is the number of distinct battery types allowed in one
// pack for a target cell count. Packs above 12 cells may mix a third type to
// reach the target without an excessive series depth.
func MaxBatteryTypes(cells int) int {
	if cells <= 12 {
		return 2
	}
	return 3
}

// Compose yields every pack whose series cell count equals cells. The
// sequence is finite and deterministic; calling Compose again with the same
// arguments yields the same packs in the same order.
func Compose(cells int, batteries []model.Battery, limits Limits) iter.Seq[model.BatteryPack] {
	return func(yield func(model.BatteryPack) bool) {
		for rows, stack := range seriesStacks(cells, batteries, limits) {
			for parallel := 1; parallel <= limits.MaxParallel; parallel++ {
				if !yield(model.BatteryPack{NumParallel: parallel, Units: stack, Rows: rows}) {
					return
				}
			}
		}
	}
}

// SeriesStacks yields the distinct series compatible stacks of at most
// limits.MaxSeriesUnits units that sum to exactly cells. Stacks are
// identified by the catalog rows they use, so two rows with equal fields are
// still different units.
func SeriesStacks(cells int, batteries []model.Battery, limits Limits) iter.Seq[[]model.Battery] {
	return func(yield func([]model.Battery) bool) {
		for _, units := range seriesStacks(cells, batteries, limits) {
			if !yield(units) {
				return
			}
		}
	}
}

// seriesStacks yields each stack together with the catalog rows of its units.
func seriesStacks(cells int, batteries []model.Battery, limits Limits) iter.Seq2[[]int, []model.Battery] {
	return func(yield func([]int, []model.Battery) bool) {
		types := min(MaxBatteryTypes(cells), len(batteries))
		if types == 0 || limits.MaxSeriesUnits < 1 {
			return
		}

		seen := sets.New[string]()
		for subset := range combinations(len(batteries), types) {
			for depth := 1; depth <= limits.MaxSeriesUnits; depth++ {
				for rows := range multisets(subset, depth) {
					key := stackKey(rows)
					if seen.Has(key) {
						continue
					}
					seen.Insert(key)

					units := make([]model.Battery, len(rows))
					for i, r := range rows {
						units[i] = batteries[r]
					}
					if !seriesCompatible(units) || totalCells(units) != cells {
						continue
					}
					if !yield(rows, units) {
						return
					}
				}
			}
		}
	}
}

func seriesCompatible(units []model.Battery) bool {
	for _, u := range units[1:] {
		if !units[0].SeriesCompatible(u) {
			return false
		}
	}
	return true
}

func totalCells(units []model.Battery) int {
	n := 0
	for _, u := range units {
		n += u.Cells
	}
	return n
}

// stackKey is the canonical content key of a stack. rows must be sorted,
// which multisets guarantees.
func stackKey(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

// combinations yields every k-sized subset of 0..n-1 in lexicographic order.
// Each yielded slice is freshly allocated.
func combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(slices.Clone(idx)) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// multisets yields every size-d multiset of pool as non-decreasing
// selections, i.e. combinations with replacement. pool must be sorted.
func multisets(pool []int, d int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if d < 1 || len(pool) == 0 {
			return
		}
		pos := make([]int, d)
		last := len(pool) - 1
		for {
			rows := make([]int, d)
			for i, p := range pos {
				rows[i] = pool[p]
			}
			if !yield(rows) {
				return
			}
			i := d - 1
			for i >= 0 && pos[i] == last {
				i--
			}
			if i < 0 {
				return
			}
			pos[i]++
			for j := i + 1; j < d; j++ {
				pos[j] = pos[i]
			}
		}
	}
}
