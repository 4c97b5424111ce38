package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CatalogOptions)(nil)

const (
	CatalogSourceDir = "dir"
	CatalogSourceS3  = "s3"
)

// CatalogOptions selects where the EDF, ESC and battery catalogs come from.
type CatalogOptions struct {
	// Source is "dir" or "s3".
	Source string `json:"source" mapstructure:"source"`

	// Dir is the directory read when Source is "dir".
	Dir string `json:"dir" mapstructure:"dir"`

	EDFFile      string `json:"edf-file" mapstructure:"edf-file"`
	ESCFile      string `json:"esc-file" mapstructure:"esc-file"`
	BatteryFile  string `json:"battery-file" mapstructure:"battery-file"`
	BaselineFile string `json:"baseline-file" mapstructure:"baseline-file"`

	// Watch re-evaluates when files in Dir change. Only honoured by the server.
	Watch bool `json:"watch" mapstructure:"watch"`
}

func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		Source:       CatalogSourceDir,
		Dir:          "data",
		EDFFile:      "edf.csv",
		ESCFile:      "esc.csv",
		BatteryFile:  "battery.csv",
		BaselineFile: "current_drone.csv",
	}
}

func (o *CatalogOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	switch o.Source {
	case CatalogSourceDir:
		if o.Dir == "" {
			errs = append(errs, fmt.Errorf("--catalog.dir is required for the %q source", CatalogSourceDir))
		}
	case CatalogSourceS3:
		if o.Watch {
			errs = append(errs, fmt.Errorf("--catalog.watch is only supported for the %q source", CatalogSourceDir))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog source %q, must be %q or %q", o.Source, CatalogSourceDir, CatalogSourceS3))
	}

	files := []struct{ flag, value string }{
		{"--catalog.edf-file", o.EDFFile},
		{"--catalog.esc-file", o.ESCFile},
		{"--catalog.battery-file", o.BatteryFile},
	}
	for _, f := range files {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", f.flag))
		}
	}
	return errs
}

func (o *CatalogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Source, "catalog.source", o.Source, "Where catalogs are read from ('dir' or 's3').")
	fs.StringVar(&o.Dir, "catalog.dir", o.Dir, "Directory holding the catalog CSV files.")
	fs.StringVar(&o.EDFFile, "catalog.edf-file", o.EDFFile, "File name of the EDF catalog.")
	fs.StringVar(&o.ESCFile, "catalog.esc-file", o.ESCFile, "File name of the ESC catalog.")
	fs.StringVar(&o.BatteryFile, "catalog.battery-file", o.BatteryFile, "File name of the battery catalog.")
	fs.StringVar(&o.BaselineFile, "catalog.baseline-file", o.BaselineFile, "Optional file with the current design reference points. Empty disables it.")
	fs.BoolVar(&o.Watch, "catalog.watch", o.Watch, "Re-evaluate when catalog files change (dir source only).")
}
