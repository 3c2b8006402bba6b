package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

const renderPath = "/api/render"

// ErrInvalidRequest tags request bodies rejected by the API schema.
var ErrInvalidRequest = errors.New("server: invalid request")

// API holds the parsed OpenAPI description of the preview endpoints.
type API struct {
	doc    *openapi3.T
	config *openapi3.Schema
}

// LoadAPI parses and validates the embedded OpenAPI document.
func LoadAPI(ctx context.Context) (*API, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("server: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("server: validate openapi document: %w", err)
	}

	item := doc.Paths.Value(renderPath)
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil, fmt.Errorf("server: openapi document lacks POST %s", renderPath)
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("server: openapi document lacks a JSON body for %s", renderPath)
	}

	return &API{doc: doc, config: media.Schema.Value}, nil
}

// Document returns the parsed OpenAPI document.
func (a *API) Document() *openapi3.T {
	return a.doc
}

// ValidateConfig checks a JSON configuration body against the schema.
func (a *API) ValidateConfig(body []byte) error {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := a.config.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
