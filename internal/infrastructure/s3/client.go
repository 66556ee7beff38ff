package s3infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/infrastructure/awscfg"
)

// putAPI is the subset of *s3.Client used by Archive.
type putAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive keeps a copy of every delivered contact email in S3, keyed by
// day and request id.
type Archive struct {
	client putAPI
	bucket string
	now    func() time.Time
}

// NewClient creates an S3 client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint and enables path-style addressing.
func NewClient(awsCfg aws.Config, cfg *config.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
			o.UsePathStyle = true
		}
	})
}

// NewArchive creates an Archive with the given S3 client and bucket name.
func NewArchive(client putAPI, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket, now: time.Now}
}

// Archive uploads the rendered HTML body and returns nil on success.
func (a *Archive) Archive(ctx context.Context, requestID string, msg *domain.EmailMessage) error {
	key := objectKey(a.now(), requestID)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(msg.HTMLBody),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"request-id": requestID,
			"recipients": strings.Join(msg.To, ","),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s: %w", key, err)
	}
	return nil
}

func objectKey(t time.Time, requestID string) string {
	return fmt.Sprintf("submissions/%s/%s.html", t.UTC().Format("2006/01/02"), requestID)
}
