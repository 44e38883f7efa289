package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/model"
)

// ObjectConfig locates an S3-compatible bucket.
type ObjectConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Prefix is prepended to every object key.
	Prefix string
	Format format.Format
	Pretty bool
}

// objectAPI is the part of *minio.Client the sink uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ObjectSink puts each record into a bucket as "<prefix>/<id><ext>".
type ObjectSink struct {
	client objectAPI
	bucket string
	region string
	prefix string
	format format.Format
	pretty bool

	mu    sync.Mutex
	ready bool // bucket known to exist
}

// NewObjectSink creates a sink for the configured bucket. No request is
// made until the first Put.
func NewObjectSink(cfg ObjectConfig) (*ObjectSink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("object store access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	f := cfg.Format
	if f == format.Unknown {
		f = format.JSON
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}

	return &ObjectSink{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		format: f,
		pretty: cfg.Pretty,
	}, nil
}

// ensureBucket creates the bucket once. A failed check is retried by the
// next Put.
func (s *ObjectSink) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.ready = true
	return nil
}

// Key returns the object key for a record.
func (s *ObjectSink) Key(r model.Record) (string, error) {
	name, err := fileName(r, s.format)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return name, nil
	}
	return path.Join(s.prefix, name), nil
}

// Put uploads r, creating the bucket on first use.
func (s *ObjectSink) Put(ctx context.Context, r model.Record) error {
	key, err := s.Key(r)
	if err != nil {
		return err
	}

	data, err := Encode(r, s.format, s.pretty)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(s.format),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func contentType(f format.Format) string {
	if f == format.YAML {
		return "application/yaml"
	}
	return "application/json"
}
