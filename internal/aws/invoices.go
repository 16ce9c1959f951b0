package awsclient

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the subset of the S3 client used to store invoices.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectPresigner is the subset of the S3 presign client used to share invoices.
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// InvoiceStore keeps asset invoices in a bucket.
type InvoiceStore struct {
	Bucket    string
	Prefix    string
	TTL       time.Duration
	Client    ObjectPutter
	Presigner ObjectPresigner
}

// NewInvoiceStore wires an invoice store to a real S3 client.
func NewInvoiceStore(client *s3.Client, bucket, prefix string, ttl time.Duration) *InvoiceStore {
	return &InvoiceStore{
		Bucket:    bucket,
		Prefix:    prefix,
		TTL:       ttl,
		Client:    client,
		Presigner: s3.NewPresignClient(client),
	}
}

// InvoiceKey returns the object key an asset's invoice is stored under.
func (s *InvoiceStore) InvoiceKey(assetID uuid.UUID, filename string) string {
	return path.Join(s.Prefix, "assets", assetID.String(), path.Base(filename))
}

// Upload stores an invoice and returns its key.
func (s *InvoiceStore) Upload(ctx context.Context, assetID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	key := s.InvoiceKey(assetID, filename)
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload invoice: %w", err)
	}
	return key, nil
}

// PresignURL returns a temporary download link for a stored invoice.
func (s *InvoiceStore) PresignURL(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.TTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign invoice: %w", err)
	}
	return req.URL, time.Now().UTC().Add(s.TTL), nil
}
