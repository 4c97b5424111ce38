package options

import (
	"runtime"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/edfsizer/internal/sizer"
	"github.com/autopeer-io/edfsizer/internal/sizer/render"
	"github.com/autopeer-io/edfsizer/pkg/app"
	"github.com/autopeer-io/edfsizer/pkg/log"
	"github.com/autopeer-io/edfsizer/pkg/options"
)

type SizerOptions struct {
	CatalogOptions *options.CatalogOptions `json:"catalog" mapstructure:"catalog"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	PolicyOptions  *options.PolicyOptions  `json:"policy" mapstructure:"policy"`
	OutputOptions  *options.OutputOptions  `json:"output" mapstructure:"output"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*SizerOptions)(nil)

func NewSizerOptions() *SizerOptions {
	o := &SizerOptions{
		CatalogOptions: options.NewCatalogOptions(),
		S3Options:      options.NewS3Options(),
		PolicyOptions:  options.NewPolicyOptions(),
		OutputOptions:  options.NewOutputOptions(),
		Log:            log.NewOptions(),
	}

	return o
}

func (o *SizerOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.CatalogOptions.AddFlags(fss.FlagSet("catalog"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.PolicyOptions.AddFlags(fss.FlagSet("policy"))
	o.OutputOptions.AddFlags(fss.FlagSet("output"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *SizerOptions) Complete() error {
	if o.PolicyOptions.Workers == 0 {
		o.PolicyOptions.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

func (o *SizerOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.CatalogOptions.Validate()...)
	if o.CatalogOptions.Source == options.CatalogSourceS3 {
		errs = append(errs, o.S3Options.Validate()...)
	}
	errs = append(errs, o.PolicyOptions.Validate()...)
	errs = append(errs, o.OutputOptions.Validate()...)
	if _, err := o.Query(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *SizerOptions) Config() (*sizer.Config, error) {
	return &sizer.Config{
		CatalogOptions: o.CatalogOptions,
		S3Options:      o.S3Options,
		PolicyOptions:  o.PolicyOptions,
	}, nil
}

// Query builds the row selection requested by --output.sort and --output.filter.
func (o *SizerOptions) Query() (*render.Query, error) {
	return render.NewQuery(o.OutputOptions.Sort, o.OutputOptions.Filter)
}
