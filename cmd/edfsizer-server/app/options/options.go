package options

import (
	"runtime"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/edfsizer/internal/sizer"
	"github.com/autopeer-io/edfsizer/pkg/app"
	"github.com/autopeer-io/edfsizer/pkg/log"
	"github.com/autopeer-io/edfsizer/pkg/options"
)

type ServerOptions struct {
	CatalogOptions *options.CatalogOptions `json:"catalog" mapstructure:"catalog"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	PolicyOptions  *options.PolicyOptions  `json:"policy" mapstructure:"policy"`
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*ServerOptions)(nil)

func NewServerOptions() *ServerOptions {
	o := &ServerOptions{
		CatalogOptions: options.NewCatalogOptions(),
		S3Options:      options.NewS3Options(),
		PolicyOptions:  options.NewPolicyOptions(),
		HttpOptions:    options.NewHttpOptions(),
		Log:            log.NewOptions(),
	}
	o.Log.Format = "json"

	return o
}

func (o *ServerOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.CatalogOptions.AddFlags(fss.FlagSet("catalog"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.PolicyOptions.AddFlags(fss.FlagSet("policy"))
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *ServerOptions) Complete() error {
	if o.PolicyOptions.Workers == 0 {
		o.PolicyOptions.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

func (o *ServerOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.CatalogOptions.Validate()...)
	if o.CatalogOptions.Source == options.CatalogSourceS3 {
		errs = append(errs, o.S3Options.Validate()...)
	}
	errs = append(errs, o.PolicyOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ServerOptions) Config() (*sizer.Config, error) {
	return &sizer.Config{
		CatalogOptions: o.CatalogOptions,
		S3Options:      o.S3Options,
		PolicyOptions:  o.PolicyOptions,
		HttpOptions:    o.HttpOptions,
	}, nil
}
