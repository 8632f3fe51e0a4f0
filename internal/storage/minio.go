package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"rawstore/internal/config"
)

// Validity of an issued upload credential. Long enough for a client to start
// the upload; the quota decision behind it is not re-checked.
const uploadCredentialExpiry = time.Hour

// minioStorage implements the Storage interface against an S3-compatible
// backend (MinIO, AWS S3, etc.). Safe for concurrent use.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a signing client for the configured bucket. When
// EnsureBucket is set it also creates the bucket if missing; production
// deployments normally provision the bucket out of band and leave it off.
func NewMinIO(cfg config.StorageConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("storage credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	if cfg.EnsureBucket {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		exists, err := cli.BucketExists(ctx, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("check bucket existence: %w", err)
		}
		if !exists {
			if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("create bucket: %w", err)
			}
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

// SignUpload issues a pre-signed POST credential bound to the exact key,
// length, content type, declared digest and ACL.
func (m *minioStorage) SignUpload(ctx context.Context, key string, opt SignUploadOptions) (*UploadCredential, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(m.bucket); err != nil {
		return nil, err
	}
	if err := policy.SetKey(key); err != nil {
		return nil, err
	}
	if err := policy.SetExpires(time.Now().UTC().Add(uploadCredentialExpiry)); err != nil {
		return nil, err
	}
	if opt.ContentType != "" {
		if err := policy.SetContentType(opt.ContentType); err != nil {
			return nil, err
		}
	}
	if err := policy.SetContentLengthRange(opt.Length, opt.Length); err != nil {
		return nil, err
	}
	if opt.ACL != "" {
		if err := policy.SetCondition("eq", "acl", opt.ACL); err != nil {
			return nil, err
		}
	}
	if opt.ContentMD5 != "" {
		if err := policy.SetUserMetadata("md5", opt.ContentMD5); err != nil {
			return nil, err
		}
	}

	u, formData, err := m.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, err
	}
	return &UploadCredential{URL: u.String(), FormData: formData}, nil
}

// ObjectExists probes the key with a metadata-only stat.
func (m *minioStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SignRead generates a pre-signed GET URL for the given bucket and key.
func (m *minioStorage) SignRead(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
