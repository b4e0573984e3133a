package store

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/s3sync/s3sync/internal/config"
	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/keyspace"
	"github.com/s3sync/s3sync/internal/models"
)

// MinioStore implements ObjectStore and UsageReader against a single bucket
// on a MinIO or other S3-compatible endpoint. Safe for concurrent use.
type MinioStore struct {
	client *minio.Client
	admin  *madmin.AdminClient
	bucket string
}

// NewMinioStore connects with static credentials from cfg.
func NewMinioStore(cfg config.StoreConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	admin, err := madmin.NewWithOptions(cfg.Endpoint, &madmin.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, admin: admin, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) List(ctx context.Context, prefix string) (models.Listing, error) {
	var listing models.Listing
	seen := make(map[string]bool)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return models.Listing{}, errs.Wrap(errs.KindListing, "list objects", obj.Err)
		}
		// A '/'-terminated entry is a child folder, except the scope's own
		// marker object, which stays in Files and is hidden by the client.
		if keyspace.IsFolder(obj.Key) && obj.Key != prefix {
			if !seen[obj.Key] {
				seen[obj.Key] = true
				listing.Folders = append(listing.Folders, obj.Key)
			}
			continue
		}
		listing.Files = append(listing.Files, models.ObjectRecord{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return listing, nil
}

func (s *MinioStore) Walk(ctx context.Context, prefix string) ([]models.ObjectRecord, error) {
	var records []models.ObjectRecord
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, errs.Wrap(errs.KindBundling, "walk objects", obj.Err)
		}
		if keyspace.IsFolder(obj.Key) {
			continue
		}
		records = append(records, models.ObjectRecord{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return records, nil
}

func (s *MinioStore) Reader(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Wrap(errs.KindBundling, "get object", err)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, errs.Wrap(errs.KindBundling, "stat object", err)
	}
	return obj, nil
}

func (s *MinioStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindAuthorization, "presign get", err)
	}
	return u, nil
}

func (s *MinioStore) PresignPut(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, ttl)
	if err != nil {
		return nil, errs.Wrap(errs.KindAuthorization, "presign put", err)
	}
	return u, nil
}

func (s *MinioStore) Usage(ctx context.Context) (Usage, error) {
	info, err := s.admin.DataUsageInfo(ctx)
	if err != nil {
		return Usage{}, err
	}
	usage := Usage{Bucket: s.bucket}
	if info.BucketSizes != nil {
		usage.Bytes = info.BucketSizes[s.bucket]
	}
	if bu, ok := info.BucketsUsage[s.bucket]; ok {
		usage.Objects = bu.ObjectsCount
		if usage.Bytes == 0 {
			usage.Bytes = bu.Size
		}
	}
	return usage, nil
}
