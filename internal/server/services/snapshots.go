package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/netx"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/timex"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	uploadToPresignedURL = netx.UploadToS3PresignedURL
)

const presignExpiry = 15 * time.Minute

// Backuper is the part of the storage manager snapshots need.
type Backuper interface {
	Backup(ctx context.Context, w io.Writer) (uint64, error)
}

// SnapshotService copies the whole store to S3-compatible object storage.
type SnapshotService struct {
	store      Backuper
	config     *config.Config
	httpClient *http.Client
	now        timex.Clock
	logger     logging.Logger
}

func NewSnapshotService(store Backuper, cfg *config.Config, logger logging.Logger) *SnapshotService {
	return &SnapshotService{
		store:      store,
		config:     cfg,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		now:        time.Now,
		logger:     logger.With("module", "snapshots"),
	}
}

// SnapshotKey returns a fresh object key under snapshots/YYYY/MM/DD/.
func SnapshotKey(t time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%s.badger", t.Year(), int(t.Month()), t.Day(), uuid.NewString())
}

func (s *SnapshotService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignedPutURL returns a URL that accepts one PUT of key.
func (s *SnapshotService) PresignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// TakeSnapshot backs the store up into memory and uploads it. It returns the
// object key on success.
func (s *SnapshotService) TakeSnapshot(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	version, err := s.store.Backup(ctx, &buf)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	key := SnapshotKey(s.now().UTC())
	url, err := s.PresignedPutURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	if err := uploadToPresignedURL(ctx, s.httpClient, url, buf.Bytes()); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	s.logger.Info(ctx, "snapshot uploaded", "key", key, "version", version, "bytes", buf.Len())
	return key, nil
}

// Run takes a snapshot every interval until ctx is done. Failures are logged
// and retried at the next tick.
func (s *SnapshotService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.TakeSnapshot(ctx); err != nil {
				s.logger.Error(ctx, "snapshot failed", "error", err)
			}
		}
	}
}
