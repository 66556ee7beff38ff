package s3infra

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestArchive_PutsHTMLUnderDailyPrefix(t *testing.T) {
	f := &fakeS3{}
	a := NewArchive(f, "contact-archive")
	a.now = func() time.Time { return time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC) }

	err := a.Archive(context.Background(), "req-1", &domain.EmailMessage{
		To: []string{"jane@example.com", "ops@example.com"}, HTMLBody: "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "contact-archive", aws.ToString(f.in.Bucket))
	assert.Equal(t, "submissions/2026/10/18/req-1.html", aws.ToString(f.in.Key))
	assert.Equal(t, "<p>hi</p>", f.body)
	assert.Equal(t, "req-1", f.in.Metadata["request-id"])
	assert.Equal(t, "jane@example.com,ops@example.com", f.in.Metadata["recipients"])
}

func TestArchive_WrapsError(t *testing.T) {
	a := NewArchive(&fakeS3{err: errors.New("NoSuchBucket")}, "b")
	err := a.Archive(context.Background(), "req-1", &domain.EmailMessage{})
	assert.ErrorContains(t, err, "NoSuchBucket")
}
