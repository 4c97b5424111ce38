package powertrain

import (
	"math"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/pack"
)

// Policy holds the search limits and acceptance thresholds.
type Policy struct {
	// MotorCounts lists the EDF counts per airframe to evaluate.
	MotorCounts []int

	// AdditionalWeight is mass not otherwise modelled, in grams.
	AdditionalWeight float64

	// MinPayload and MinFlyTime (minutes) are the acceptance thresholds.
	MinPayload float64
	MinFlyTime float64

	Pack pack.Limits
}

// DefaultPolicy returns the stock search: 3 and 4 motor layouts, 1 kg of
// extra mass, any positive payload and at least 5 minutes of flight.
func DefaultPolicy() Policy {
	return Policy{
		MotorCounts:      []int{3, 4},
		AdditionalWeight: 1000,
		MinPayload:       0,
		MinFlyTime:       5,
		Pack:             pack.DefaultLimits(),
	}
}

// Derive computes the performance of motors EDFs e, one ESC s per motor,
// and pack p.
func Derive(e model.EDF, s model.ESC, p model.BatteryPack, motors int, additionalWeight float64) model.CandidateSpec {
	n := float64(motors)

	spec := model.CandidateSpec{
		EDFName:     e.Name,
		NumEDF:      motors,
		ESCName:     s.Name,
		BatteryName: p.Name(),
	}
	spec.TotalWeight = n*e.Weight + n*s.Weight + p.Weight() + FrameWeight(e.Size, motors) + additionalWeight
	spec.TotalThrust = n * e.Thrust
	spec.MaxPayload = spec.TotalThrust - spec.TotalWeight
	spec.TotalPowerCapacity = p.Capacity()
	spec.MaxCurrentConsumption = n * e.CurrentConsumption
	// capacity over current has an hour time base; report minutes.
	spec.MinFlyTime = spec.TotalPowerCapacity / spec.MaxCurrentConsumption * 60
	spec.HoverPower = spec.TotalWeight / spec.TotalThrust
	spec.HoverTime = spec.MinFlyTime / spec.HoverPower
	return spec
}

// Accept reports whether the combination satisfies every engineering
// constraint of the policy.
func Accept(e model.EDF, s model.ESC, p model.BatteryPack, motors int, spec model.CandidateSpec, policy Policy) bool {
	return e.BatteryType == p.Cells() &&
		s.AcceptsCells(e.BatteryType) &&
		e.CurrentConsumption <= s.Current &&
		float64(motors)*e.CurrentConsumption <= p.MaxCurrent() &&
		spec.MaxPayload >= policy.MinPayload &&
		spec.MinFlyTime >= policy.MinFlyTime &&
		finite(spec)
}

func finite(spec model.CandidateSpec) bool {
	for _, v := range []float64{
		spec.TotalWeight,
		spec.TotalThrust,
		spec.MaxPayload,
		spec.TotalPowerCapacity,
		spec.MaxCurrentConsumption,
		spec.MinFlyTime,
		spec.HoverPower,
		spec.HoverTime,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
