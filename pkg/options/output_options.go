package options

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
)

var _ IOptions = (*OutputOptions)(nil)

var outputFormats = []string{"table", "json", "csv"}

// OutputOptions controls how the search command prints its result.
type OutputOptions struct {
	Format string `json:"format" mapstructure:"format"`

	// FrontierOnly prints just the Pareto optimal candidates.
	FrontierOnly bool `json:"frontier-only" mapstructure:"frontier-only"`

	// Sort lists the columns to order by; a leading "-" sorts descending.
	Sort []string `json:"sort" mapstructure:"sort"`

	// Filter holds "<column><op><value>" expressions a row must all match.
	Filter []string `json:"filter" mapstructure:"filter"`
}

func NewOutputOptions() *OutputOptions {
	return &OutputOptions{Format: "table"}
}

func (o *OutputOptions) Validate() []error {
	if o == nil {
		return nil
	}
	if !slices.Contains(outputFormats, o.Format) {
		return []error{fmt.Errorf("invalid output format %q, must be one of %v", o.Format, outputFormats)}
	}
	return nil
}

func (o *OutputOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Format, "output.format", "o", o.Format, "Output format: table, json or csv.")
	fs.BoolVar(&o.FrontierOnly, "output.frontier-only", o.FrontierOnly, "Only print Pareto optimal candidates.")
	fs.StringSliceVar(&o.Sort, "output.sort", o.Sort, "Columns to sort by, e.g. -max_payload,min_fly_time. A leading '-' sorts descending.")
	fs.StringArrayVar(&o.Filter, "output.filter", o.Filter, "Row filter such as 'num_edf=4', 'min_fly_time>=8' or 'esc_name~hobby'. May be repeated.")
}
