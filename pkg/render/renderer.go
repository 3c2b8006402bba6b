package render

import (
	"context"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Renderer converts a signature configuration into a byte representation
// (HTML, plain text, PNG, vCard).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, cfg signature.Config, options RenderOptions) ([]byte, error)
}
