package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/autopeer-io/edfsizer/pkg/log"
	"github.com/autopeer-io/edfsizer/pkg/options"
)

var _ Source = (*minioSource)(nil)

type minioSource struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// NewMinIOSource 创建基于 S3 协议的目录数据源
func NewMinIOSource(opts *options.S3Options) (Source, error) {
	minioOpts := &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	}
	if opts.InsecureSkipVerify {
		// 开发环境的 MinIO 通常使用自签名证书, 需要自定义 Transport 跳过验证
		minioOpts.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	client, err := minio.New(opts.Endpoint, minioOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioSource{
		client:     client,
		bucketName: opts.BucketName,
		prefix:     opts.Prefix,
	}, nil
}

// CheckBucket fails when the bucket is missing. The bucket is never created.
func (s *minioSource) CheckBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucketName)
	}
	log.Debug("Catalog bucket found", "bucket", s.bucketName)
	return nil
}

func (s *minioSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)

	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	// GetObject 是惰性的, Stat 才会真正发出请求
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	return obj, nil
}

func (s *minioSource) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucketName, s.prefix)
}
