// Package minio implements objstore.Store on a MinIO or S3-compatible
// object store.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/candidly/candex/core"
	"github.com/candidly/candex/objstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store archives document files in a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

var _ objstore.Store = (*Store)(nil)

// NewStore connects to the object store and ensures the bucket exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		slog.Default().Info("created object store bucket", "bucket", cfg.Bucket)
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		logger: slog.Default().With("component", "objstore"),
	}, nil
}

// Put archives a file under documents/<id>/<filename>.
func (s *Store) Put(ctx context.Context, documentID core.ID, filename string, data []byte) (string, error) {
	path := fmt.Sprintf("documents/%d/%s", documentID, filepath.Base(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	s.logger.Debug("archived document", "path", path, "bytes", len(data))
	return path, nil
}

// Get retrieves an archived file.
func (s *Store) Get(ctx context.Context, storagePath string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, storagePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// Delete removes an archived file.
func (s *Store) Delete(ctx context.Context, storagePath string) error {
	return s.client.RemoveObject(ctx, s.bucket, storagePath, minio.RemoveObjectOptions{})
}
