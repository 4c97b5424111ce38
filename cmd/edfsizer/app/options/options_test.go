package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/pkg/options"
)

func TestSizerOptionsDefaults(t *testing.T) {
	o := NewSizerOptions()
	require.NoError(t, o.Complete())
	assert.NoError(t, o.Validate())

	fss := o.Flags()
	assert.Equal(t, []string{"catalog", "s3", "policy", "output", "log"}, fss.Order)
	assert.NotNil(t, fss.FlagSets["output"].Lookup("output.format"))
}

func TestSizerOptionsCompleteWorkers(t *testing.T) {
	o := NewSizerOptions()
	o.PolicyOptions.Workers = 0

	require.NoError(t, o.Complete())
	assert.GreaterOrEqual(t, o.PolicyOptions.Workers, 1)
}

func TestSizerOptionsValidateS3(t *testing.T) {
	o := NewSizerOptions()
	o.CatalogOptions.Source = options.CatalogSourceS3
	o.S3Options.BucketName = ""
	o.OutputOptions.Format = "xml"

	err := o.Validate()
	assert.ErrorContains(t, err, "--s3.bucket-name is required")
	assert.ErrorContains(t, err, `invalid output format "xml"`)
}

func TestSizerOptionsConfig(t *testing.T) {
	o := NewSizerOptions()
	cfg, err := o.Config()
	require.NoError(t, err)
	assert.Same(t, o.CatalogOptions, cfg.CatalogOptions)
	assert.Same(t, o.PolicyOptions, cfg.PolicyOptions)
}

func TestSizerOptionsQuery(t *testing.T) {
	o := NewSizerOptions()
	o.OutputOptions.Sort = []string{"-max_payload"}
	o.OutputOptions.Filter = []string{"num_edf=4"}
	require.NoError(t, o.Validate())

	q, err := o.Query()
	require.NoError(t, err)
	assert.NotNil(t, q)

	o.OutputOptions.Sort = []string{"price"}
	assert.ErrorContains(t, o.Validate(), `invalid sort key "price"`)
}
