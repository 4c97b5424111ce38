package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*PolicyOptions)(nil)

// PolicyOptions holds the search limits and acceptance thresholds.
type PolicyOptions struct {
	// MotorCounts lists the EDF counts tried per airframe.
	MotorCounts []int `json:"motor-counts" mapstructure:"motor-counts"`

	// AdditionalWeight is avionics and payload carrier mass, in grams.
	AdditionalWeight float64 `json:"additional-weight" mapstructure:"additional-weight"`

	MinPayload float64 `json:"min-payload" mapstructure:"min-payload"`

	// MinFlyTime is in minutes.
	MinFlyTime float64 `json:"min-fly-time" mapstructure:"min-fly-time"`

	// MaxSeriesUnits caps the number of battery units wired in series.
	MaxSeriesUnits int `json:"max-series-units" mapstructure:"max-series-units"`

	// MaxParallel caps the number of parallel strings in a pack.
	MaxParallel int `json:"max-parallel" mapstructure:"max-parallel"`

	// Workers > 1 shards the enumeration across goroutines.
	Workers int `json:"workers" mapstructure:"workers"`
}

func NewPolicyOptions() *PolicyOptions {
	return &PolicyOptions{
		MotorCounts:      []int{3, 4},
		AdditionalWeight: 1000,
		MinPayload:       0,
		MinFlyTime:       5,
		MaxSeriesUnits:   5,
		MaxParallel:      4,
		Workers:          1,
	}
}

func (o *PolicyOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if len(o.MotorCounts) == 0 {
		errs = append(errs, fmt.Errorf("--policy.motor-counts must list at least one motor count"))
	}
	for _, n := range o.MotorCounts {
		if n < 1 {
			errs = append(errs, fmt.Errorf("invalid motor count %d, must be positive", n))
		}
	}
	if o.AdditionalWeight < 0 {
		errs = append(errs, fmt.Errorf("--policy.additional-weight must not be negative"))
	}
	if o.MaxSeriesUnits < 1 {
		errs = append(errs, fmt.Errorf("--policy.max-series-units must be at least 1"))
	}
	if o.MaxParallel < 1 {
		errs = append(errs, fmt.Errorf("--policy.max-parallel must be at least 1"))
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("--policy.workers must be at least 1"))
	}
	return errs
}

func (o *PolicyOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntSliceVar(&o.MotorCounts, "policy.motor-counts", o.MotorCounts, "EDF counts to evaluate per airframe.")
	fs.Float64Var(&o.AdditionalWeight, "policy.additional-weight", o.AdditionalWeight, "Mass not otherwise modelled (avionics, payload carrier), in grams.")
	fs.Float64Var(&o.MinPayload, "policy.min-payload", o.MinPayload, "Minimum accepted payload, in grams.")
	fs.Float64Var(&o.MinFlyTime, "policy.min-fly-time", o.MinFlyTime, "Minimum accepted full-throttle fly time, in minutes.")
	fs.IntVar(&o.MaxSeriesUnits, "policy.max-series-units", o.MaxSeriesUnits, "Maximum battery units wired in series per pack.")
	fs.IntVar(&o.MaxParallel, "policy.max-parallel", o.MaxParallel, "Maximum parallel strings per pack.")
	fs.IntVar(&o.Workers, "policy.workers", o.Workers, "Number of goroutines used for the enumeration; 0 uses GOMAXPROCS.")
}
