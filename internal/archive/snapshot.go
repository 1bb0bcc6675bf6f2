// Package archive keeps an audit copy of every catalogue revision this
// system writes, in an S3-compatible bucket. The remote store already
// versions the catalogue; the archive exists so a clobbered or force-pushed
// repository can still be reconstructed.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tomward0606/StockSystem/internal/config"
)

type SnapshotArchiver struct {
	client *s3.Client
	bucket string
}

// NewSnapshotArchiver builds the archiver, or returns nil when the archive
// bucket is not configured. A nil archiver is safe to call.
func NewSnapshotArchiver(ctx context.Context, cfg *config.Config) *SnapshotArchiver {
	if cfg.Archive.Bucket == "" || cfg.Archive.AccessKey == "" {
		log.Println("[Archive] Not configured, catalogue snapshots disabled")
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})

	log.Printf("[Archive] Catalogue snapshots enabled (bucket %s)", cfg.Archive.Bucket)
	return &SnapshotArchiver{client: client, bucket: cfg.Archive.Bucket}
}

// ArchiveCatalogue uploads one committed catalogue revision, keyed by commit
// time and version token. Failures are logged, never propagated: the write
// to the remote store already succeeded and must not be reported as failed.
func (a *SnapshotArchiver) ArchiveCatalogue(ctx context.Context, content []byte, versionToken string) {
	if a == nil {
		return
	}

	key := fmt.Sprintf("catalogue/%s_%s.csv", time.Now().UTC().Format("20060102T150405Z"), versionToken)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		log.Printf("[Archive] Failed to archive catalogue snapshot %s: %v", key, err)
		return
	}

	log.Printf("[Archive] Stored catalogue snapshot %s", key)
}
