package model

// Battery is one battery unit as listed in the battery catalog.
type Battery struct {
	Name string

	// Cells is the series cell count of a single unit.
	Cells int

	// Capacity is in mAh.
	Capacity float64

	// CRating is the continuous discharge rating.
	CRating float64

	// MaxCurrent is in A.
	MaxCurrent float64

	// Weight is in grams.
	Weight float64
}

// SeriesCompatible reports whether b can share a series string with o.
// Units in series must agree on capacity and discharge rating.
func (b Battery) SeriesCompatible(o Battery) bool {
	return b.Capacity == o.Capacity && b.CRating == o.CRating
}

// ESC is an electronic speed controller.
type ESC struct {
	Name string

	// CellsMin and CellsMax bound the pack cell count the ESC accepts, inclusive.
	CellsMin int
	CellsMax int

	// Current is the maximum continuous current, in A.
	Current float64

	Weight float64
}

// AcceptsCells reports whether a pack of cells series cells is within range.
func (s ESC) AcceptsCells(cells int) bool {
	return s.CellsMin <= cells && cells <= s.CellsMax
}

// EDF is an electric ducted fan motor.
type EDF struct {
	Name string

	// BatteryType is the total series cell count the motor requires.
	BatteryType int

	// Size is the duct diameter in mm. It only drives the frame weight estimate.
	Size float64

	// Thrust is in grams-force.
	Thrust float64

	Weight float64

	// CurrentConsumption is the full-throttle current draw, in A.
	CurrentConsumption float64
}

// Catalog is one snapshot of the component catalogs.
type Catalog struct {
	EDFs      []EDF
	ESCs      []ESC
	Batteries []Battery
}

// Empty reports whether any of the three catalogs is empty, in which case no
// powertrain can be assembled.
func (c Catalog) Empty() bool {
	return len(c.EDFs) == 0 || len(c.ESCs) == 0 || len(c.Batteries) == 0
}
