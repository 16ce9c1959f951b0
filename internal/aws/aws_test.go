package awsclient

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*sesv2.SendEmailOutput), args.Error(1)
}

type mockSecrets struct {
	mock.Mock
}

func (m *mockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}

func TestInvoiceStore_Upload(t *testing.T) {
	client := new(mockS3)
	store := &InvoiceStore{Bucket: "invoices", Prefix: "prod", Client: client, Presigner: client}
	assetID := uuid.New()

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "invoices" &&
			*in.Key == "prod/assets/"+assetID.String()+"/invoice.pdf" &&
			*in.ContentType == "application/pdf"
	})).Return(&s3.PutObjectOutput{}, nil)

	key, err := store.Upload(context.Background(), assetID, "../../invoice.pdf", "application/pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, "prod/assets/"+assetID.String()+"/invoice.pdf", key)
	client.AssertExpectations(t)
}

func TestInvoiceStore_PresignURL(t *testing.T) {
	client := new(mockS3)
	store := &InvoiceStore{Bucket: "invoices", TTL: time.Minute, Client: client, Presigner: client}

	client.On("PresignGetObject", mock.Anything, mock.Anything).
		Return(&v4.PresignedHTTPRequest{URL: "https://invoices.s3/x?sig"}, nil)

	url, expires, err := store.PresignURL(context.Background(), "assets/x/invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://invoices.s3/x?sig", url)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expires, 5*time.Second)
}

func TestMailer_Send(t *testing.T) {
	client := new(mockSES)
	mailer := &Mailer{From: "assets@example.org", Client: client}

	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *sesv2.SendEmailInput) bool {
		return *in.FromEmailAddress == "assets@example.org" &&
			in.Destination.ToAddresses[0] == "jane@example.org"
	})).Return(&sesv2.SendEmailOutput{}, nil)

	require.NoError(t, mailer.Send(context.Background(), "jane@example.org", "Asset assigned", "body"))
	client.AssertExpectations(t)
}

func TestResolveSecret(t *testing.T) {
	client := new(mockSecrets)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("jwt-secret")}, nil).Once()

	secret, err := ResolveSecret(context.Background(), client, "arn:aws:secretsmanager:eu-west-2:1:secret:jwt")
	require.NoError(t, err)
	assert.Equal(t, "jwt-secret", secret)

	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return((*secretsmanager.GetSecretValueOutput)(nil), errors.New("denied")).Once()
	_, err = ResolveSecret(context.Background(), client, "arn")
	assert.ErrorContains(t, err, "denied")
}

func TestResolveSecret_APIErrorCode(t *testing.T) {
	client := new(mockSecrets)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return((*secretsmanager.GetSecretValueOutput)(nil), &smithy.GenericAPIError{
			Code:    "ResourceNotFoundException",
			Message: "Secrets Manager can't find the specified secret.",
		})

	_, err := ResolveSecret(context.Background(), client, "arn:missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(ResourceNotFoundException)")

	var apiErr smithy.APIError
	assert.ErrorAs(t, err, &apiErr)
}
