package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/debemdeboas/the-notebook/internal/util/compression"
)

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	Bucket          string
	Prefix          string
	Region          string
	BaseEndpoint    string
	AccessKeyID     string
	AccessKeySecret string
	Timeout         time.Duration
}

// S3KV stores each key as one object. The compression codec travels in the object metadata.
type S3KV struct {
	client     S3API
	bucket     string
	prefix     string
	timeout    time.Duration
	compressor compression.Compressor
}

const (
	s3CodecMetadata  = "codec"
	s3DefaultTimeout = 10 * time.Second
)

func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.AccessKeySecret, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing S3 client: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3KV(client S3API, opts S3Options, compressor compression.Compressor) *S3KV {
	if compressor == nil {
		compressor = compression.ZstdCompressor{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s3DefaultTimeout
	}
	return &S3KV{
		client:     client,
		bucket:     opts.Bucket,
		prefix:     opts.Prefix,
		timeout:    timeout,
		compressor: compressor,
	}
}

func (s *S3KV) objectKey(key string) string {
	return s.prefix + key
}

func (s *S3KV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error fetching object %q: %w", key, err)
	}
	defer out.Body.Close()

	blob, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("error reading object %q: %w", key, err)
	}

	decoder, err := compression.ForName(out.Metadata[s3CodecMetadata])
	if err != nil {
		return "", false, err
	}
	content, err := decoder.Decompress(blob)
	if err != nil {
		return "", false, fmt.Errorf("error decompressing object %q: %w", key, err)
	}
	return string(content), true, nil
}

func (s *S3KV) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	compressed, err := s.compressor.Compress([]byte(value))
	if err != nil {
		return fmt.Errorf("error compressing object %q: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(compressed),
		ContentType: aws.String("application/json"),
		Metadata:    map[string]string{s3CodecMetadata: s.compressor.Name()},
	})
	if err != nil {
		return fmt.Errorf("error uploading object %q: %w", key, err)
	}
	return nil
}
