package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Options configures the MinIO-backed image store.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PublicBaseURL, when set, is prefixed to object names to build image
	// URLs (e.g. a CDN or a public-read bucket endpoint). When empty, URLs
	// are presigned GETs with a week-long expiry.
	PublicBaseURL string
}

// S3Store keeps complaint photos in an S3/MinIO bucket.
type S3Store struct {
	client  *minio.Client
	bucket  string
	region  string
	baseURL string
}

// NewS3Store creates a MinIO client from the options.
func NewS3Store(opts S3Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &S3Store{
		client:  client,
		bucket:  opts.Bucket,
		region:  opts.Region,
		baseURL: strings.TrimSuffix(opts.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket makes sure the image bucket exists before use.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Save uploads the image and returns its access URL.
func (s *S3Store) Save(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (string, error) {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, fileName, r, size, opts); err != nil {
		return "", fmt.Errorf("upload image object: %w", err)
	}
	if s.baseURL != "" {
		return s.baseURL + "/" + fileName, nil
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, fileName, 7*24*time.Hour, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign image object: %w", err)
	}
	return u.String(), nil
}

// Load fetches the image bytes from the bucket.
func (s *S3Store) Load(ctx context.Context, fileName string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get image object: %w", err)
	}
	defer obj.Close()
	buf, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read image object: %w", err)
	}
	return buf, nil
}

// Remove deletes the image object.
func (s *S3Store) Remove(ctx context.Context, fileName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove image object: %w", err)
	}
	return nil
}
