package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultPrefix is the key prefix published objects are stored under.
const DefaultPrefix = "signatures"

var (
	ErrInvalidConfig      = errors.New("assets: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("assets: failed to load AWS config")
	ErrInvalidName        = errors.New("assets: invalid object name")
	ErrAccessDenied       = errors.New("assets: access denied")
	ErrBucketNotFound     = errors.New("assets: bucket not found")
	ErrServiceUnavailable = errors.New("assets: storage service unavailable")
	ErrOperationTimeout   = errors.New("assets: operation timed out")
	ErrOperationCanceled  = errors.New("assets: operation canceled")
)

// S3Client is the subset of the S3 API the publisher uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config contains configuration for the publisher.
type S3Config struct {
	Bucket         string `koanf:"bucket" yaml:"bucket,omitempty"`
	Region         string `koanf:"region" yaml:"region,omitempty"`
	AccessKeyID    string `koanf:"access_key_id" yaml:"access_key_id,omitempty"`
	SecretKey      string `koanf:"secret_key" yaml:"secret_key,omitempty"`
	Endpoint       string `koanf:"endpoint" yaml:"endpoint,omitempty"` // S3-compatible services
	BaseURL        string `koanf:"base_url" yaml:"base_url,omitempty"` // public URL base, e.g. a CDN
	ForcePathStyle bool   `koanf:"force_path_style" yaml:"force_path_style,omitempty"`
	Prefix         string `koanf:"prefix" yaml:"prefix,omitempty"`
}

// PublishOption customises a Publisher.
type PublishOption func(*publishOptions)

type publishOptions struct {
	client        S3Client
	configOptions []func(*config.LoadOptions) error
	uploadTimeout time.Duration
	newID         func() string
	logger        zerolog.Logger
	cacheControl  string
}

// WithS3Client uses a pre-configured client. Useful for tests.
func WithS3Client(client S3Client) PublishOption {
	return func(o *publishOptions) {
		o.client = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) PublishOption {
	return func(o *publishOptions) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithUploadTimeout bounds each upload.
func WithUploadTimeout(timeout time.Duration) PublishOption {
	return func(o *publishOptions) {
		o.uploadTimeout = timeout
	}
}

// WithIDGenerator replaces the random UUID used in object keys.
func WithIDGenerator(fn func() string) PublishOption {
	return func(o *publishOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithCacheControl sets the Cache-Control header of uploaded objects.
func WithCacheControl(value string) PublishOption {
	return func(o *publishOptions) {
		o.cacheControl = value
	}
}

// WithPublishLogger sets the logger for upload diagnostics.
func WithPublishLogger(logger zerolog.Logger) PublishOption {
	return func(o *publishOptions) {
		o.logger = logger
	}
}

// Published describes an uploaded object.
type Published struct {
	Key         string
	URL         string
	ContentType string
	Size        int
}

// Publisher uploads signature assets to S3 and returns their public URLs.
// It is safe for concurrent use.
type Publisher struct {
	client        S3Client
	bucket        string
	prefix        string
	baseURL       string
	uploadTimeout time.Duration
	cacheControl  string
	newID         func() string
	logger        zerolog.Logger
}

// NewPublisher creates a publisher for cfg.
func NewPublisher(ctx context.Context, cfg S3Config, opts ...PublishOption) (*Publisher, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &publishOptions{
		newID:        uuid.NewString,
		logger:       zerolog.Nop(),
		cacheControl: "public, max-age=31536000, immutable",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	client := options.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		awsOptions = append(awsOptions, options.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Publisher{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        prefix,
		baseURL:       baseURL,
		uploadTimeout: options.uploadTimeout,
		cacheControl:  options.cacheControl,
		newID:         options.newID,
		logger:        options.logger,
	}, nil
}

// Publish uploads data under <prefix>/<uuid>/<name>. An empty contentType is
// detected from the name and content.
func (p *Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (Published, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" || strings.Contains(name, "..") {
		return Published{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if len(data) == 0 {
		return Published{}, ErrEmptyAsset
	}
	if contentType == "" {
		contentType = DetectMIMEType(name, data)
	}

	if p.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.uploadTimeout)
		defer cancel()
	}

	key := path.Join(p.prefix, p.newID(), name)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if p.cacheControl != "" {
		input.CacheControl = aws.String(p.cacheControl)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return Published{}, classifyS3Error(err, "upload "+name)
	}

	out := Published{
		Key:         key,
		URL:         p.URL(key),
		ContentType: contentType,
		Size:        len(data),
	}
	p.logger.Debug().Str("key", key).Int("size", out.Size).Msg("published asset")
	return out, nil
}

// PublishFile reads path and publishes it under its base name.
func (p *Publisher) PublishFile(ctx context.Context, filePath string) (Published, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Published{}, fmt.Errorf("assets: read %s: %w", filePath, err)
	}
	return p.Publish(ctx, filepath.Base(filePath), data, "")
}

// URL returns the public URL for key.
func (p *Publisher) URL(key string) string {
	return p.baseURL + strings.TrimPrefix(key, "/")
}

func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s", ErrOperationCanceled, operation)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", ErrAccessDenied, operation)
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, operation)
		default:
			return fmt.Errorf("assets: %s failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("assets: %s failed: %w", operation, err)
}
