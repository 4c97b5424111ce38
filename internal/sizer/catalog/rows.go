package catalog

// Row types mirror the CSV columns. Each carries the mapstructure key of its
// column and the validator rules the value must satisfy.

type batteryRow struct {
	Name       string  `mapstructure:"battery_name" validate:"required"`
	Cells      int     `mapstructure:"cells" validate:"gte=1"`
	Capacity   float64 `mapstructure:"capacity" validate:"gt=0"`
	CRating    float64 `mapstructure:"c_rating" validate:"gt=0"`
	MaxCurrent float64 `mapstructure:"max_current" validate:"gt=0"`
	Weight     float64 `mapstructure:"weight" validate:"gte=0"`
}

type escRow struct {
	Name     string  `mapstructure:"esc_name" validate:"required"`
	CellsMin int     `mapstructure:"battery_cells_min" validate:"gte=1"`
	CellsMax int     `mapstructure:"battery_cells_max" validate:"gtefield=CellsMin"`
	Current  float64 `mapstructure:"current" validate:"gt=0"`
	Weight   float64 `mapstructure:"weight" validate:"gte=0"`
}

type edfRow struct {
	Name               string  `mapstructure:"edf_name" validate:"required"`
	BatteryType        int     `mapstructure:"battery_type" validate:"gte=1"`
	Size               float64 `mapstructure:"size" validate:"gt=0"`
	Thrust             float64 `mapstructure:"thrust" validate:"gt=0"`
	Weight             float64 `mapstructure:"weight" validate:"gte=0"`
	CurrentConsumption float64 `mapstructure:"current_consumption" validate:"gt=0"`
}

// baselineRow is a reference design. Only the two objectives are required;
// the remaining columns are shown when present.
type baselineRow struct {
	EDFName               string  `mapstructure:"edf_name"`
	NumEDF                int     `mapstructure:"num_edf" validate:"gte=0"`
	ESCName               string  `mapstructure:"esc_name"`
	BatteryName           string  `mapstructure:"battery_name"`
	TotalWeight           float64 `mapstructure:"total_weight"`
	TotalThrust           float64 `mapstructure:"total_thrust"`
	MaxPayload            float64 `mapstructure:"max_payload"`
	TotalPowerCapacity    float64 `mapstructure:"total_power_capacity"`
	MaxCurrentConsumption float64 `mapstructure:"max_current_consumption"`
	MinFlyTime            float64 `mapstructure:"min_fly_time"`
	HoverPower            float64 `mapstructure:"hover_power"`
	HoverTime             float64 `mapstructure:"hover_time"`
}

// schema describes the columns of one catalog file.
type schema struct {
	// nameKey receives a column headed plain "name".
	nameKey  string
	required []string
}

var (
	batterySchema = schema{
		nameKey:  "battery_name",
		required: []string{"battery_name", "cells", "capacity", "c_rating", "max_current", "weight"},
	}
	escSchema = schema{
		nameKey:  "esc_name",
		required: []string{"esc_name", "battery_cells_min", "battery_cells_max", "current", "weight"},
	}
	edfSchema = schema{
		nameKey:  "edf_name",
		required: []string{"edf_name", "battery_type", "size", "thrust", "weight", "current_consumption"},
	}
	baselineSchema = schema{
		nameKey:  "edf_name",
		required: []string{"max_payload", "min_fly_time"},
	}
)
