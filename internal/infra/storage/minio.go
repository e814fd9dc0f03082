package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
)

// Store arsip report + snapshot source ke bucket S3/MinIO. Optional; dipakai
// tim yang mau share hasil analisa antar mesin.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// archivePayload is what lands in the bucket: the full report plus the exact
// source text that produced it, so a reviewer can reproduce the score.
type archivePayload struct {
	Report *domain.ScoreReport `json:"report"`
	Source string              `json:"source"`
}

// UploadReport implementasi ArchiveStore
func (s *Store) UploadReport(ctx context.Context, report *domain.ScoreReport, source string) (string, error) {
	body, err := json.Marshal(archivePayload{Report: report, Source: source})
	if err != nil {
		return "", fmt.Errorf("marshal archive payload: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%s.json", filepath.Base(report.FilePath), report.ID)
	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	// URL publik (jika bucket public); kalau private harus generate presigned URL
	url := fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key)
	return url, nil
}
