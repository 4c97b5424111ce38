package powertrain

import "math"

type frameClass struct {
	size   float64
	weight float64
}

// frameClasses maps EDF duct size (mm) to airframe weight (g), sorted by size.
var frameClasses = []frameClass{
	{size: 50, weight: 500},
	{size: 70, weight: 1000},
	{size: 90, weight: 2000},
	{size: 120, weight: 3000},
	{size: 150, weight: 4000},
	{size: 200, weight: 5000},
	{size: 250, weight: 6000},
}

// threeMotorFrameFactor scales the frame weight of three motor layouts,
// which use a lighter frame class.
const threeMotorFrameFactor = 0.75

// FrameWeight estimates the airframe weight for motors EDFs of the given duct
// size. The nearest tabulated size is used; when two sizes are equally near
// the smaller one wins.
func FrameWeight(size float64, motors int) float64 {
	best := frameClasses[0]
	for _, c := range frameClasses[1:] {
		if math.Abs(c.size-size) < math.Abs(best.size-size) {
			best = c
		}
	}

	weight := best.weight
	if motors == 3 {
		weight *= threeMotorFrameFactor
	}
	return weight
}
