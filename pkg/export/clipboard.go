package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/goliatone/go-emailsig/pkg/sanitize"
)

// ErrNoTerminal is returned when the clipboard has nowhere to write.
var ErrNoTerminal = errors.New("export: clipboard output is not configured")

// Clipboard receives copied signatures. html is the markup, plain the
// tag-stripped fallback.
type Clipboard interface {
	WriteHTML(ctx context.Context, html, plain string) error
}

// Multiplexer selects the passthrough wrapping for OSC 52 sequences.
type Multiplexer int

const (
	MultiplexerNone Multiplexer = iota
	MultiplexerTmux
	MultiplexerScreen
)

// DetectMultiplexer inspects TMUX, STY and TERM through getenv.
func DetectMultiplexer(getenv func(string) string) Multiplexer {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch {
	case getenv("TMUX") != "":
		return MultiplexerTmux
	case getenv("STY") != "", strings.HasPrefix(getenv("TERM"), "screen"):
		return MultiplexerScreen
	default:
		return MultiplexerNone
	}
}

// OSC52Clipboard copies through the terminal with an OSC 52 escape
// sequence. Terminals only accept text for OSC 52, so the HTML source is
// written as text; pasting it into a mail client's HTML source view keeps
// the formatting.
type OSC52Clipboard struct {
	Out         io.Writer
	Multiplexer Multiplexer
	// Limit caps the payload in bytes; zero means no limit.
	Limit int
}

var _ Clipboard = (*OSC52Clipboard)(nil)

// NewOSC52Clipboard writes to out, detecting tmux or screen from the
// environment.
func NewOSC52Clipboard(out io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{Out: out, Multiplexer: DetectMultiplexer(os.Getenv)}
}

// WriteHTML implements Clipboard.
func (c *OSC52Clipboard) WriteHTML(ctx context.Context, html, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.Out == nil {
		return ErrNoTerminal
	}
	if _, err := c.Sequence(html).WriteTo(c.Out); err != nil {
		return fmt.Errorf("export: write osc52: %w", err)
	}
	return nil
}

// Sequence builds the escape sequence for content.
func (c *OSC52Clipboard) Sequence(content string) osc52.Sequence {
	seq := osc52.New(content)
	switch c.Multiplexer {
	case MultiplexerTmux:
		seq = seq.Tmux()
	case MultiplexerScreen:
		seq = seq.Screen()
	}
	if c.Limit > 0 {
		seq = seq.Limit(c.Limit)
	}
	return seq
}

// CopyHTML copies html with a tag-stripped plain-text fallback.
func CopyHTML(ctx context.Context, clip Clipboard, html string) Notice {
	if clip == nil {
		return failure(MessageCopyFailed, ErrNoTerminal)
	}
	if err := clip.WriteHTML(ctx, html, sanitize.PlainText(html)); err != nil {
		return failure(MessageCopyFailed, err)
	}
	return success(MessageCopied)
}

// CopyRendered copies the serialized markup of the rendered signature, the
// way a browser exposes a node's inner HTML.
func CopyRendered(ctx context.Context, clip Clipboard, html string) Notice {
	if strings.TrimSpace(html) == "" {
		return failure(MessagePreviewNotFound, errors.New("export: nothing rendered"))
	}
	rendered, err := RenderedMarkup(html)
	if err != nil {
		return failure(MessageRenderedFailed, err)
	}
	if clip == nil {
		return failure(MessageRenderedFailed, ErrNoTerminal)
	}
	if err := clip.WriteHTML(ctx, rendered, sanitize.PlainText(rendered)); err != nil {
		return failure(MessageRenderedFailed, err)
	}
	return success(MessageRenderedCopied)
}
