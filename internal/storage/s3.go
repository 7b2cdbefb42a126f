package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"psicoagenda/config"
)

const kvPrefix = "kv/"

type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// ObjectName extracts the object key from an s3://bucket/key reference, an
// https://bucket.s3.region.amazonaws.com/key URL or a bare object key.
func ObjectName(fileURL string) (string, error) {
	if fileURL == "" {
		return "", errors.New("пустой URL файла")
	}

	if rest, ok := strings.CutPrefix(fileURL, "s3://"); ok {
		_, key, found := strings.Cut(rest, "/")
		if !found || key == "" {
			return "", fmt.Errorf("некорректный URL файла: %s", fileURL)
		}
		return key, nil
	}

	if strings.HasPrefix(fileURL, "http://") || strings.HasPrefix(fileURL, "https://") {
		parts := strings.Split(fileURL, "/")
		if len(parts) < 4 || !strings.Contains(parts[2], "amazonaws.com") {
			return "", fmt.Errorf("некорректный URL файла: %s", fileURL)
		}
		return strings.Join(parts[3:], "/"), nil
	}

	return strings.TrimPrefix(fileURL, "/"), nil
}

// IsObjectReference reports whether an image field points into the bucket
// and needs a presigned link before it is handed to a client.
func IsObjectReference(fileURL string) bool {
	return strings.HasPrefix(fileURL, "s3://")
}

func (s *S3Storage) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	objectName, err := ObjectName(fileURL)
	if err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения файла из S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла из S3: %w", err)
	}

	return data, nil
}

func (s *S3Storage) GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	objectName, err := ObjectName(fileURL)
	if err != nil {
		return "", err
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации пресайн URL: %w", err)
	}

	return presignedURL.String(), nil
}

func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	objectName := kvPrefix + key + ".json"

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записи из S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения записи из S3: %w", err)
	}

	return data, nil
}

func (s *S3Storage) Set(ctx context.Context, key string, value []byte) error {
	objectName := kvPrefix + key + ".json"

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения записи в S3: %w", err)
	}

	s.logger.Debug("запись сохранена в S3", zap.String("object", objectName))
	return nil
}
