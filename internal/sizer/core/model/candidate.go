package model

import (
	"time"

	"github.com/google/uuid"
)

// CandidateSpec is the derived performance of one accepted
// (EDF, ESC, pack, motor count) combination.
type CandidateSpec struct {
	EDFName               string  `json:"edf_name"`
	NumEDF                int     `json:"num_edf"`
	ESCName               string  `json:"esc_name"`
	BatteryName           string  `json:"battery_name"`
	TotalWeight           float64 `json:"total_weight"`
	TotalThrust           float64 `json:"total_thrust"`
	MaxPayload            float64 `json:"max_payload"`
	TotalPowerCapacity    float64 `json:"total_power_capacity"`
	MaxCurrentConsumption float64 `json:"max_current_consumption"`
	MinFlyTime            float64 `json:"min_fly_time"`
	HoverPower            float64 `json:"hover_power"`
	HoverTime             float64 `json:"hover_time"`
}

// Result is the outcome of one full evaluation over a catalog snapshot.
type Result struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Candidates []CandidateSpec `json:"candidates"`

	// Frontier is the Pareto optimal subset of Candidates.
	Frontier []CandidateSpec `json:"frontier"`

	// Baseline holds externally supplied reference designs. They are never
	// part of Candidates or Frontier.
	Baseline []CandidateSpec `json:"baseline"`
}
