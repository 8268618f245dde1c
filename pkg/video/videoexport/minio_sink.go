package videoexport

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/xerror"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Prefix    string
}

type minioSink struct {
	client *miniogo.Client
	bucket string
	prefix string
}

// MinIOSink stores images as objects in a bucket, keyed by prefix/name.
func MinIOSink(cfg MinIOConfig) (Sink, error) {
	if len(cfg.Endpoint) == 0 || len(cfg.Bucket) == 0 {
		return nil, xerror.New("minio sink needs both an endpoint and a bucket")
	}
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, xerror.Errorf("create minio client: %w", err)
	}
	return &minioSink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// EnsureBucket creates the sink's bucket when it does not exist yet.
func (s *minioSink) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return videoerr.IO("check bucket %s: %v", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{}); err != nil {
		return videoerr.IO("create bucket %s: %v", s.bucket, err)
	}
	return nil
}

func (s *minioSink) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return videoerr.IO("upload %s: %v", s.Location(name), err)
	}
	return nil
}

func (s *minioSink) Remove(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(name), miniogo.RemoveObjectOptions{}); err != nil {
		return videoerr.IO("remove %s: %v", s.Location(name), err)
	}
	return nil
}

func (s *minioSink) Location(name string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key(name))
}

func (s *minioSink) key(name string) string {
	return path.Join(s.prefix, name)
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); len(ct) > 0 {
		return ct
	}
	return "application/octet-stream"
}
