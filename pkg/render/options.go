package render

const (
	// DefaultPixelRatio is the raster scale used when RenderOptions leaves
	// PixelRatio unset.
	DefaultPixelRatio = 2.0
	// MaxPixelRatio caps raster scale so a request cannot allocate an
	// arbitrarily large canvas.
	MaxPixelRatio = 4.0
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the configuration pipeline.
type RenderOptions struct {
	// Freeform replaces the generated signature with user-edited HTML. The
	// html, text and png renderers honour it; vcard and qr always encode the
	// configuration. Callers are expected to sanitize it first.
	Freeform string
	// Document wraps the signature block in a standalone HTML document, which
	// is what the download path writes to signature.html.
	Document bool
	// PixelRatio scales raster output. Zero means DefaultPixelRatio; values
	// above MaxPixelRatio are clamped.
	PixelRatio float64
}

// Scale returns the effective pixel ratio.
func (o RenderOptions) Scale() float64 {
	switch {
	case o.PixelRatio <= 0:
		return DefaultPixelRatio
	case o.PixelRatio > MaxPixelRatio:
		return MaxPixelRatio
	}
	return o.PixelRatio
}
