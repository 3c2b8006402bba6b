// Package text renders the signature as plain text, the multipart fallback
// for clients that do not display HTML.
package text

import (
	"context"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/sanitize"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Name is the registry key of the plain-text renderer.
const Name = "text"

// Delimiter is the conventional signature separator line ("-- ").
const Delimiter = "-- "

type Option func(*Renderer)

// WithDelimiter prefixes output with the "-- " signature delimiter line.
func WithDelimiter(enabled bool) Option {
	return func(r *Renderer) {
		r.delimiter = enabled
	}
}

type Renderer struct {
	delimiter bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, cfg signature.Config, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blocks [][]string
	if freeform := strings.TrimSpace(options.Freeform); freeform != "" {
		blocks = append(blocks, splitLines(sanitize.PlainText(freeform)))
	} else {
		blocks = Blocks(cfg)
	}

	var b strings.Builder
	if r.delimiter {
		b.WriteString(Delimiter + "\n")
	}
	for i, block := range blocks {
		if i > 0 && cfg.ShowDivider {
			b.WriteString("\n")
		}
		for _, line := range block {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}

// Blocks groups the plain-text lines of cfg: identity, contact, social and
// disclaimer. Empty groups are dropped. The raster renderer lays out the
// same groups.
func Blocks(cfg signature.Config) [][]string {
	sep := signature.ResolveSeparator(cfg)
	glue := " "
	if sep != "" {
		glue = " " + sep + " "
	}

	var identity []string
	for _, line := range []string{cfg.FullName(), cfg.TitleLine(), strings.TrimSpace(cfg.Company)} {
		if line != "" {
			identity = append(identity, line)
		}
	}

	var contact []string
	if links := joinPresent(glue, cfg.Email, signature.AppendUTM(strings.TrimSpace(cfg.Website), cfg.UTMParams)); links != "" {
		contact = append(contact, links)
	}
	var phones []string
	if cfg.Phone != "" {
		phones = append(phones, "Tel: "+cfg.Phone)
	}
	if cfg.Mobile != "" {
		phones = append(phones, "Mobile: "+cfg.Mobile)
	}
	if len(phones) > 0 {
		contact = append(contact, strings.Join(phones, glue))
	}
	if address := cfg.AddressLine(); address != "" {
		contact = append(contact, address)
	}

	var social []string
	for _, link := range cfg.VisibleSocial() {
		label := strings.TrimSpace(link.Label)
		href := signature.AppendUTM(link.Href, cfg.UTMParams)
		if label == "" {
			social = append(social, href)
			continue
		}
		social = append(social, label+": "+href)
	}
	if cfg.IncludeVCard && strings.TrimSpace(cfg.VCardURL) != "" {
		social = append(social, "vCard: "+strings.TrimSpace(cfg.VCardURL))
	}

	disclaimer := splitLines(sanitize.PlainText(cfg.DisclaimerHTML))

	var blocks [][]string
	for _, block := range [][]string{identity, contact, social, disclaimer} {
		if len(block) > 0 {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func joinPresent(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
