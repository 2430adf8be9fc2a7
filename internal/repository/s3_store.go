package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"codebind/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3API is the subset of the S3 client used by the S3 document store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// s3Store implements DocumentStore as a single JSON object in a bucket.
type s3Store struct {
	client S3API
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed document store for bucket/key.
func NewS3Store(client S3API, bucket, key string, logger zerolog.Logger) DocumentStore {
	return &s3Store{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger.With().
			Str("store", "s3").
			Str("bucket", bucket).
			Str("key", key).
			Logger(),
	}
}

// Load fetches and decodes the document object.
func (s *s3Store) Load(ctx context.Context) (*model.Document, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error().Err(err).Msg("failed to get code document from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read code document from S3")
		return nil, fmt.Errorf("failed to read S3 object %s: %w", s.key, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("code document is malformed")
		return nil, err
	}

	return doc, nil
}

// Save uploads the encoded document, replacing the previous object.
func (s *s3Store) Save(ctx context.Context, doc *model.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to put code document to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}

	s.logger.Debug().
		Int("codes", len(doc.Codes)).
		Int("bindings", len(doc.Bindings)).
		Msg("code document saved to S3")

	return nil
}
