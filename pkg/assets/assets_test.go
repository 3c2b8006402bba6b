package assets_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-emailsig/pkg/assets"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInlineBytes(t *testing.T) {
	t.Parallel()
	data := pngBytes(t)

	uri, err := assets.InlineBytes(data, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	_, err = assets.InlineBytes(nil, "")
	assert.ErrorIs(t, err, assets.ErrEmptyAsset)

	_, err = assets.InlineBytes([]byte("plain words"), "")
	assert.ErrorIs(t, err, assets.ErrNotAnImage)

	_, err = assets.InlineBytes(make([]byte, assets.MaxInlineSize+1), "image/png")
	assert.ErrorIs(t, err, assets.ErrAssetTooBig)
}

func TestInlineFileUsesExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svg := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0o644))

	uri, err := assets.InlineFile(svg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"), uri)

	_, err = assets.InlineFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestNewPublisherValidatesConfig(t *testing.T) {
	t.Parallel()
	_, err := assets.NewPublisher(context.Background(), assets.S3Config{Bucket: "b"})
	assert.ErrorIs(t, err, assets.ErrInvalidConfig)
}

func TestPublish(t *testing.T) {
	t.Parallel()
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "sigs" &&
			aws.ToString(in.Key) == "signatures/fixed-id/logo.png" &&
			aws.ToString(in.ContentType) == "image/png" &&
			len(body) > 0
	}), mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

	pub, err := assets.NewPublisher(context.Background(),
		assets.S3Config{Bucket: "sigs", Region: "eu-west-1"},
		assets.WithS3Client(client),
		assets.WithIDGenerator(func() string { return "fixed-id" }),
	)
	require.NoError(t, err)

	out, err := pub.Publish(context.Background(), "../logo.png", pngBytes(t), "")
	require.NoError(t, err)
	assert.Equal(t, "signatures/fixed-id/logo.png", out.Key)
	assert.Equal(t, "https://sigs.s3.eu-west-1.amazonaws.com/signatures/fixed-id/logo.png", out.URL)
	client.AssertExpectations(t)
}

func TestPublishCustomBaseURLAndPrefix(t *testing.T) {
	t.Parallel()
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	pub, err := assets.NewPublisher(context.Background(),
		assets.S3Config{Bucket: "sigs", Region: "us-east-1", BaseURL: "https://cdn.example.com", Prefix: "/team/"},
		assets.WithS3Client(client),
		assets.WithIDGenerator(func() string { return "id" }),
	)
	require.NoError(t, err)

	out, err := pub.Publish(context.Background(), "signature.html", []byte("<p>x</p>"), "text/html")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/team/id/signature.html", out.URL)
}

func TestPublishClassifiesErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, assets.ErrAccessDenied},
		{"no bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, assets.ErrBucketNotFound},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, assets.ErrServiceUnavailable},
		{"timeout", context.DeadlineExceeded, assets.ErrOperationTimeout},
		{"canceled", context.Canceled, assets.ErrOperationCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			pub, err := assets.NewPublisher(context.Background(),
				assets.S3Config{Bucket: "sigs", Region: "us-east-1"},
				assets.WithS3Client(client),
			)
			require.NoError(t, err)

			_, err = pub.Publish(context.Background(), "logo.png", []byte{1}, "image/png")
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestPublishRejectsBadInput(t *testing.T) {
	t.Parallel()
	pub, err := assets.NewPublisher(context.Background(),
		assets.S3Config{Bucket: "sigs", Region: "us-east-1"},
		assets.WithS3Client(new(MockS3Client)),
	)
	require.NoError(t, err)

	_, err = pub.Publish(context.Background(), "  ", []byte{1}, "")
	assert.ErrorIs(t, err, assets.ErrInvalidName)

	_, err = pub.Publish(context.Background(), "logo.png", nil, "")
	assert.ErrorIs(t, err, assets.ErrEmptyAsset)
}
