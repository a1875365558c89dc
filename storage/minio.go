package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/handleme/gallery/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStorage stores blobs in a MinIO / S3-compatible bucket.
type minioStorage struct {
	client     *minio.Client
	bucketName string
}

func newMinioStorage(cfg *config.Config) (*minioStorage, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 10 * time.Second,
		DisableCompression:    true,
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.MinioAccessKeyID, cfg.MinioSecretAccessKey, ""),
		Secure:    cfg.MinioUseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", cfg.MinioBucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.MinioBucketName, err)
		}
		log.Printf("Successfully created bucket: %s", cfg.MinioBucketName)
	}

	return &minioStorage{
		client:     client,
		bucketName: cfg.MinioBucketName,
	}, nil
}

func (s *minioStorage) SaveNew(ctx context.Context, key string, file io.Reader, size int64, contentType string) error {
	// Object stores have no O_EXCL; an existence check honors the
	// no-overwrite contract. Keys carry a fresh UUID, so a concurrent
	// writer on the same key does not occur in practice.
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrKeyExists
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucketName, key, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object '%s' to minio: %w", key, err)
	}

	return nil
}

func (s *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object stream from minio for '%s': %w", key, err)
	}

	// GetObject is lazy; stat to surface NoSuchKey now.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return nil, fmt.Errorf("file not found in minio: %s", key)
		}
		return nil, fmt.Errorf("failed to stat object '%s' in minio: %w", key, err)
	}

	return obj, nil
}

func (s *minioStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object '%s' in minio: %w", key, err)
	}
	return true, nil
}

func (s *minioStorage) Health(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

func (s *minioStorage) Name() string {
	return "minio"
}
