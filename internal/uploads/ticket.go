package uploads

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const ticketExpiry = 60 * time.Second

// Ticket is a short-lived authorization to upload one object.
type Ticket struct {
	URL              string
	FileKey          string
	ExpiresInSeconds int64
}

// Ticketer mints upload tickets bound to an object's declared attributes.
type Ticketer interface {
	Mint(ctx context.Context, fileKey, contentType string, sizeBytes int64, checksumHex string) (Ticket, error)
}

// NewFileKey derives a storage key from the object checksum plus a random
// suffix, so identical content never collides across uploads.
func NewFileKey(checksumHex string) string {
	return checksumHex[:16] + "-" + uuid.NewString()
}

// S3Ticketer mints presigned S3 PUT URLs. The signature binds content type,
// length and SHA-256 checksum, so the stored object matches the ticket.
type S3Ticketer struct {
	presign *s3.PresignClient
	bucket  string
	prefix  string
}

// NewS3Ticketer builds a ticketer against the given bucket and key prefix.
func NewS3Ticketer(ctx context.Context, region, bucket, prefix string) (*S3Ticketer, error) {
	if bucket == "" {
		return nil, fmt.Errorf("uploads bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Ticketer{
		presign: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:  bucket,
		prefix:  strings.Trim(strings.TrimSpace(prefix), "/"),
	}, nil
}

// Mint presigns a PUT for the object key.
func (t *S3Ticketer) Mint(ctx context.Context, fileKey, contentType string, sizeBytes int64, checksumHex string) (Ticket, error) {
	raw, err := hex.DecodeString(checksumHex)
	if err != nil {
		return Ticket{}, fmt.Errorf("decode checksum: %w", err)
	}

	objectKey := fileKey
	if t.prefix != "" {
		objectKey = path.Join(t.prefix, fileKey)
	}

	input := &s3.PutObjectInput{
		Bucket:         aws.String(t.bucket),
		Key:            aws.String(objectKey),
		ContentType:    aws.String(contentType),
		ContentLength:  aws.Int64(sizeBytes),
		ChecksumSHA256: aws.String(base64.StdEncoding.EncodeToString(raw)),
	}
	out, err := t.presign.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = ticketExpiry
	})
	if err != nil {
		return Ticket{}, fmt.Errorf("presign put object bucket=%s key=%s: %w", t.bucket, objectKey, err)
	}

	return Ticket{
		URL:              out.URL,
		FileKey:          fileKey,
		ExpiresInSeconds: int64(ticketExpiry.Seconds()),
	}, nil
}

// LocalTicketer points clients at the direct upload endpoint. It backs the
// local object store in dev, where nothing can presign for us.
type LocalTicketer struct {
	BaseURL string
}

// Mint returns a ticket whose URL targets PUT /api/v1/uploads/direct/:key.
func (t *LocalTicketer) Mint(ctx context.Context, fileKey, contentType string, sizeBytes int64, checksumHex string) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}
	return Ticket{
		URL:              strings.TrimSuffix(t.BaseURL, "/") + "/api/v1/uploads/direct/" + fileKey,
		FileKey:          fileKey,
		ExpiresInSeconds: int64(ticketExpiry.Seconds()),
	}, nil
}

var (
	_ Ticketer = (*S3Ticketer)(nil)
	_ Ticketer = (*LocalTicketer)(nil)
)
