package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Transformer mutates a configuration after presets are applied.
// Implementations can force brand colors, inject a company-wide disclaimer,
// or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, cfg *signature.Config) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, cfg *signature.Config) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, cfg *signature.Config) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, cfg)
}

// JSONOverrideTransformer applies declarative overrides loaded from a JSON
// object using the configuration's JSON keys. Only keys present in the
// document are changed; a "social" key replaces the whole list:
//
//	{
//	  "company": "Acme Holdings",
//	  "accent": "#0f766e",
//	  "disclaimerHtml": "<i>Confidential</i>"
//	}
type JSONOverrideTransformer struct {
	document json.RawMessage
}

// NewJSONOverrideTransformer constructs a transformer from raw JSON bytes.
func NewJSONOverrideTransformer(data []byte) (*JSONOverrideTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("json override transformer: document is empty")
	}
	var parsed signature.Config
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, fmt.Errorf("json override transformer: parse document: %w", err)
	}
	return &JSONOverrideTransformer{document: append(json.RawMessage(nil), trimmed...)}, nil
}

// NewJSONOverrideTransformerFromFS loads a JSON override document from the
// provided filesystem path.
func NewJSONOverrideTransformerFromFS(fsys fs.FS, path string) (*JSONOverrideTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json override transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json override transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json override transformer: read %s: %w", path, err)
	}
	return NewJSONOverrideTransformer(data)
}

// Transform merges the document into cfg.
func (t *JSONOverrideTransformer) Transform(ctx context.Context, cfg *signature.Config) error {
	if t == nil || cfg == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := signature.MergeJSON(cfg, t.document); err != nil {
		return fmt.Errorf("json override transformer: apply: %w", err)
	}
	return nil
}
