// Package pareto extracts the non-dominated subset of a candidate set under a
// maximize/maximize ordering of payload and flight time.
package pareto

import "github.com/autopeer-io/edfsizer/internal/sizer/core/model"

// Point is the objective pair of one record. Larger is better on both axes.
type Point struct {
	Payload float64
	FlyTime float64
}

// Dominates reports whether p is at least as good as q on both objectives and
// strictly better on one of them.
func (p Point) Dominates(q Point) bool {
	return p.Payload >= q.Payload && p.FlyTime >= q.FlyTime &&
		(p.Payload > q.Payload || p.FlyTime > q.FlyTime)
}

// SpecPoint projects a CandidateSpec onto its objectives.
func SpecPoint(s model.CandidateSpec) Point {
	return Point{Payload: s.MaxPayload, FlyTime: s.MinFlyTime}
}

// Frontier returns the items not dominated by any other item, in input order.
// Items are compared by position, so equal points from distinct items never
// knock each other out.
func Frontier[T any](items []T, point func(T) Point) []T {
	if len(items) < 2 {
		return items
	}

	points := make([]Point, len(items))
	for i, it := range items {
		points[i] = point(it)
	}

	out := make([]T, 0, len(items))
	for i, a := range points {
		if !dominated(i, a, points) {
			out = append(out, items[i])
		}
	}
	return out
}

func dominated(i int, a Point, points []Point) bool {
	for j, b := range points {
		if j != i && b.Dominates(a) {
			return true
		}
	}
	return false
}

// Specs is Frontier over CandidateSpecs.
func Specs(specs []model.CandidateSpec) []model.CandidateSpec {
	return Frontier(specs, SpecPoint)
}
