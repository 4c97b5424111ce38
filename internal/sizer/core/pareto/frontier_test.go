package pareto

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

func spec(name string, payload, flyTime float64) model.CandidateSpec {
	return model.CandidateSpec{EDFName: name, MaxPayload: payload, MinFlyTime: flyTime}
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want bool
	}{
		{"better on both", Point{2, 2}, Point{1, 1}, true},
		{"tie on payload", Point{100, 10}, Point{100, 8}, true},
		{"tie on fly time", Point{101, 8}, Point{100, 8}, true},
		{"equal", Point{1, 1}, Point{1, 1}, false},
		{"trade-off", Point{2, 1}, Point{1, 2}, false},
		{"worse", Point{1, 1}, Point{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Dominates(tt.q))
		})
	}
}

func TestFrontierTieOnOneAxis(t *testing.T) {
	a, b := spec("a", 100, 10), spec("b", 100, 8)

	assert.Equal(t, []model.CandidateSpec{a}, Specs([]model.CandidateSpec{a, b}))
	assert.Equal(t, []model.CandidateSpec{a}, Specs([]model.CandidateSpec{b, a}))
}

func TestFrontierIdenticalPointsSurvive(t *testing.T) {
	a, b := spec("a", 50, 5), spec("b", 50, 5)
	c := spec("c", 10, 1)

	assert.Equal(t, []model.CandidateSpec{a, b}, Specs([]model.CandidateSpec{a, c, b}))
}

func TestFrontierDegenerateInput(t *testing.T) {
	assert.Empty(t, Specs(nil))
	assert.Empty(t, Specs([]model.CandidateSpec{}))

	one := []model.CandidateSpec{spec("a", -3, 0)}
	assert.Equal(t, one, Specs(one))
}

func TestFrontierKeepsInputOrder(t *testing.T) {
	in := []model.CandidateSpec{
		spec("a", 10, 1),
		spec("b", 1, 10),
		spec("c", 5, 5),
		spec("d", 4, 4),
	}

	got := Specs(in)

	assert.Equal(t, []model.CandidateSpec{in[0], in[1], in[2]}, got)
}

func TestFrontierGeneric(t *testing.T) {
	type point struct{ x, y float64 }
	in := []point{{1, 1}, {2, 0}, {0, 2}, {0.5, 0.5}}

	got := Frontier(in, func(p point) Point { return Point{Payload: p.x, FlyTime: p.y} })

	assert.Equal(t, []point{{1, 1}, {2, 0}, {0, 2}}, got)
}

func TestFrontierCorrectness(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	in := make([]model.CandidateSpec, 300)
	for i := range in {
		// coarse values so ties on an axis show up
		in[i] = spec("s", float64(r.IntN(40)), float64(r.IntN(40)))
	}

	front := Specs(in)
	require.NotEmpty(t, front)

	for i, a := range front {
		for j, b := range front {
			if i != j {
				assert.False(t, SpecPoint(b).Dominates(SpecPoint(a)), "%v dominates %v", b, a)
			}
		}
	}

	kept := make(map[int]bool)
	for i := range in {
		for _, f := range front {
			if in[i] == f {
				kept[i] = true
			}
		}
	}
	for i, a := range in {
		if kept[i] {
			continue
		}
		found := false
		for j, b := range in {
			if j != i && SpecPoint(b).Dominates(SpecPoint(a)) {
				found = true
				break
			}
		}
		assert.True(t, found, "excluded %v has no dominator", a)
	}
}
