// Package contact renders the sender's contact card: a vCard file and a QR
// code encoding the same card.
package contact

import (
	"context"
	"errors"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/signature"
	"github.com/goliatone/go-emailsig/pkg/vcard"
)

const (
	VCardName = "vcard"
	QRName    = "qr"

	// defaultQRSize is the QR edge in CSS pixels before the pixel ratio.
	defaultQRSize = 128
)

// ErrFailedToGenerateQRCode wraps encoder failures.
var ErrFailedToGenerateQRCode = errors.New("contact: failed to generate QR code")

type VCardRenderer struct{}

var _ render.Renderer = VCardRenderer{}

func (VCardRenderer) Name() string        { return VCardName }
func (VCardRenderer) ContentType() string { return vcard.ContentType }

func (VCardRenderer) Render(ctx context.Context, cfg signature.Config, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	card, err := vcard.Encode(cfg)
	if err != nil {
		return nil, err
	}
	return []byte(card), nil
}

// QRRenderer encodes the vCard as a PNG QR code.
type QRRenderer struct {
	// Size is the edge length in CSS pixels; zero means 128.
	Size int
}

var _ render.Renderer = QRRenderer{}

func (QRRenderer) Name() string        { return QRName }
func (QRRenderer) ContentType() string { return "image/png" }

func (q QRRenderer) Render(ctx context.Context, cfg signature.Config, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := q.Size
	if size <= 0 {
		size = defaultQRSize
	}
	card, err := vcard.Encode(cfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	png, err := skipqrcode.Encode(card, skipqrcode.Medium, int(float64(size)*options.Scale()))
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}
