package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxInlineSize caps images embedded as data URIs. Larger signatures get
// clipped by several webmail clients.
const MaxInlineSize = 1 << 20

var (
	ErrEmptyAsset  = errors.New("assets: asset is empty")
	ErrAssetTooBig = errors.New("assets: asset exceeds inline size limit")
	ErrNotAnImage  = errors.New("assets: asset is not an image")
)

// InlineBytes encodes data as a base64 data URI. An empty mimeType is
// sniffed from the content.
func InlineBytes(data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyAsset
	}
	if len(data) > MaxInlineSize {
		return "", fmt.Errorf("%w: %d bytes", ErrAssetTooBig, len(data))
	}
	if mimeType == "" {
		mimeType = DetectMIMEType("", data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// InlineFile reads path and encodes it as a data URI.
func InlineFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("assets: read %s: %w", path, err)
	}
	return InlineBytes(data, DetectMIMEType(path, data))
}

// DetectMIMEType prefers the file extension and falls back to content
// sniffing. Parameters such as charset are dropped.
func DetectMIMEType(name string, data []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if byExt := mime.TypeByExtension(strings.ToLower(ext)); byExt != "" {
			return baseType(byExt)
		}
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return baseType(http.DetectContentType(data))
}

func baseType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	}
	return mediaType
}
