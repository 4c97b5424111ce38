package catalog

import "github.com/autopeer-io/edfsizer/internal/sizer/core/model"

// ToBattery converts a decoded CSV row to a model.Battery.
func (r batteryRow) ToBattery() model.Battery {
	return model.Battery{
		Name:       r.Name,
		Cells:      r.Cells,
		Capacity:   r.Capacity,
		CRating:    r.CRating,
		MaxCurrent: r.MaxCurrent,
		Weight:     r.Weight,
	}
}

func (r escRow) ToESC() model.ESC {
	return model.ESC{
		Name:     r.Name,
		CellsMin: r.CellsMin,
		CellsMax: r.CellsMax,
		Current:  r.Current,
		Weight:   r.Weight,
	}
}

func (r edfRow) ToEDF() model.EDF {
	return model.EDF{
		Name:               r.Name,
		BatteryType:        r.BatteryType,
		Size:               r.Size,
		Thrust:             r.Thrust,
		Weight:             r.Weight,
		CurrentConsumption: r.CurrentConsumption,
	}
}

func (r baselineRow) ToSpec() model.CandidateSpec {
	return model.CandidateSpec{
		EDFName:               r.EDFName,
		NumEDF:                r.NumEDF,
		ESCName:               r.ESCName,
		BatteryName:           r.BatteryName,
		TotalWeight:           r.TotalWeight,
		TotalThrust:           r.TotalThrust,
		MaxPayload:            r.MaxPayload,
		TotalPowerCapacity:    r.TotalPowerCapacity,
		MaxCurrentConsumption: r.MaxCurrentConsumption,
		MinFlyTime:            r.MinFlyTime,
		HoverPower:            r.HoverPower,
		HoverTime:             r.HoverTime,
	}
}
