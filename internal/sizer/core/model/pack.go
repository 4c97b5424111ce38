package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// BatteryPack is a series stack of battery units replicated NumParallel
// times in parallel. All units share capacity and discharge rating, so the
// first unit stands for the whole stack where a single value is needed.
type BatteryPack struct {
	NumParallel int
	Units       []Battery

	// Rows holds the catalog row of each unit, parallel to Units. Units from
	// different rows are told apart even when their fields are equal. When
	// Rows is unset units are grouped by value.
	Rows []int
}

// Capacity is the pack capacity in mAh.
func (p BatteryPack) Capacity() float64 {
	if len(p.Units) == 0 {
		return 0
	}
	return float64(p.NumParallel) * p.Units[0].Capacity
}

// Cells is the series cell count of the pack.
func (p BatteryPack) Cells() int {
	return lo.SumBy(p.Units, func(b Battery) int { return b.Cells })
}

// MaxCurrent is the maximum current the pack can deliver, in A.
func (p BatteryPack) MaxCurrent() float64 {
	if len(p.Units) == 0 {
		return 0
	}
	return float64(p.NumParallel) * p.Units[0].MaxCurrent
}

// Weight is the total weight of every unit in the pack, in grams.
func (p BatteryPack) Weight() float64 {
	return float64(p.NumParallel) * lo.SumBy(p.Units, func(b Battery) float64 { return b.Weight })
}

// Name summarises the pack as "battery combination N in parallel: 2 x A 1 x B".
// Unit groups keep the order in which they first appear in the stack.
func (p BatteryPack) Name() string {
	keys := p.Rows
	if len(keys) != len(p.Units) {
		keys = lo.Map(p.Units, func(b Battery, _ int) int { return lo.IndexOf(p.Units, b) })
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "battery combination %d in parallel:", p.NumParallel)
	for _, key := range lo.Uniq(keys) {
		unit := p.Units[lo.IndexOf(keys, key)]
		fmt.Fprintf(&sb, " %d x %s", lo.Count(keys, key), unit.Name)
	}
	return sb.String()
}

func (p BatteryPack) String() string { return p.Name() }
