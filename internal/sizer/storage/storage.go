// Package storage opens catalog files from a local directory or an S3
// compatible bucket.
package storage

import (
	"context"
	"fmt"

	"github.com/autopeer-io/edfsizer/pkg/options"
)

// bucketChecker is implemented by sources that can verify their backend up front.
type bucketChecker interface {
	CheckBucket(ctx context.Context) error
}

// NewSource builds the Source selected by opts.Source. Remote sources are
// checked once so a bad bucket fails at startup rather than on first reload.
func NewSource(ctx context.Context, opts *options.CatalogOptions, s3 *options.S3Options) (Source, error) {
	var (
		src Source
		err error
	)
	switch opts.Source {
	case options.CatalogSourceDir:
		src, err = NewDirSource(opts.Dir)
	case options.CatalogSourceS3:
		src, err = NewMinIOSource(s3)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", opts.Source)
	}
	if err != nil {
		return nil, err
	}

	if c, ok := src.(bucketChecker); ok {
		if err := c.CheckBucket(ctx); err != nil {
			return nil, err
		}
	}
	return src, nil
}
