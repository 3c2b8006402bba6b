// Package raster draws the signature layout into a PNG image. It mirrors the
// HTML block (logo, headshot, identity, contact, divider, social and
// disclaimer) using the Go fonts, on a white background.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/sanitize"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Name is the registry key of the PNG renderer.
const Name = "png"

const (
	padding       = 16.0
	lineSpacing   = 1.4
	topLogoMax    = 200.0
	asideLogoMax  = 120.0
	headshotSize  = 64.0
	socialGap     = 12.0
	defaultSize   = 13
	maxDimension  = 8192
	fallbackColor = "#1f2937"
)

var (
	// ErrEmptySignature is returned when the configuration has nothing to draw.
	ErrEmptySignature = errors.New("raster: nothing to render")
	// ErrTooLarge is returned when the canvas would exceed maxDimension.
	ErrTooLarge = errors.New("raster: image too large")

	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "image/png"
}

// Render draws cfg at options.Scale() device pixels per CSS pixel. When
// options.Freeform is set its visible text is drawn instead of the layout.
func (r *Renderer) Render(ctx context.Context, cfg signature.Config, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	l := newLayout(cfg, options.Scale(), faces)
	if freeform := strings.TrimSpace(options.Freeform); freeform != "" {
		l.freeform(freeform)
	} else {
		l.signature()
	}
	if l.empty() {
		return nil, ErrEmptySignature
	}

	width, height := l.dimensions()
	if width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	l.draw(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type itemKind int

const (
	itemText itemKind = iota
	itemGap
	itemRule
	itemRun
)

// item is one vertical slot of the text column.
type item struct {
	kind   itemKind
	text   string
	face   font.Face
	color  string
	height float64
	// run holds the labels of an inline link row (social links).
	run []string
}

type layout struct {
	cfg     signature.Config
	scale   float64
	faces   *faceCache
	size    float64
	spacing float64

	topLogo  image.Image
	asideImg image.Image
	headshot image.Image
	items    []item
}

func newLayout(cfg signature.Config, scale float64, faces *faceCache) *layout {
	size := cfg.FontSize
	if size <= 0 {
		size = defaultSize
	}
	spacing := math.Max(float64(cfg.Spacing), 0)
	return &layout{
		cfg:     cfg,
		scale:   scale,
		faces:   faces,
		size:    float64(size) * scale,
		spacing: spacing * scale,
	}
}

func (l *layout) signature() {
	cfg := l.cfg

	if cfg.ShowLogo {
		if img, err := decodeDataURI(cfg.LogoURL); err == nil {
			switch cfg.LogoPosition {
			case signature.LogoLeft:
				l.asideImg = fitWidth(img, asideLogoMax, l.scale)
			default:
				l.topLogo = fitWidth(img, topLogoMax, l.scale)
			}
		}
	}
	if img, err := decodeDataURI(cfg.HeadshotURL); err == nil {
		side := int(headshotSize * l.scale)
		l.headshot = resize(img, side, side)
	}

	regular := l.faces.face(styleRegular, l.size)
	textColor := colorOr(cfg.TextColor, fallbackColor)
	linkColor := colorOr(cfg.LinkColor, textColor)

	var identity []item
	if name := cfg.FullName(); name != "" {
		nameFace := l.faces.face(styleFor(cfg.NameBold, false), l.size+l.scale)
		identity = append(identity, l.textItem(name, nameFace, textColor))
	}
	if title := cfg.TitleLine(); title != "" {
		identity = append(identity, l.textItem(title, l.faces.face(styleFor(false, cfg.TitleItalic), l.size), textColor))
	}
	if company := strings.TrimSpace(cfg.Company); company != "" {
		identity = append(identity, l.textItem(company, regular, textColor))
	}

	sep := signature.ResolveSeparator(cfg)
	glue := " "
	if sep != "" {
		glue = " " + sep + " "
	}

	var contact []item
	var links []string
	if cfg.Email != "" {
		links = append(links, cfg.Email)
	}
	if cfg.Website != "" {
		links = append(links, cfg.WebsiteText())
	}
	if len(links) > 0 {
		contact = append(contact, l.textItem(strings.Join(links, glue), regular, linkColor))
	}
	var phones []string
	if cfg.Phone != "" {
		phones = append(phones, "Tel: "+cfg.Phone)
	}
	if cfg.Mobile != "" {
		phones = append(phones, "Mobile: "+cfg.Mobile)
	}
	if len(phones) > 0 {
		contact = append(contact, l.textItem(strings.Join(phones, glue), regular, textColor))
	}
	if address := cfg.AddressLine(); address != "" {
		contact = append(contact, l.textItem(address, regular, textColor))
	}

	l.block(identity)
	l.block(contact)

	if cfg.ShowDivider {
		l.items = append(l.items,
			item{kind: itemGap, height: l.spacing},
			item{kind: itemRule, color: colorOr(cfg.DividerColor, "#e5e7eb"), height: math.Max(1, l.scale)},
			item{kind: itemGap, height: l.spacing},
		)
	}

	var labels []string
	for _, link := range cfg.VisibleSocial() {
		label := link.Label
		if cfg.SocialUseIcons {
			label = "• " + label
		}
		labels = append(labels, label)
	}
	if len(labels) > 0 {
		l.items = append(l.items, item{kind: itemGap, height: l.spacing})
		run := l.textItem("", regular, linkColor)
		run.kind = itemRun
		run.run = labels
		l.items = append(l.items, run)
	}

	if cfg.IncludeVCard {
		l.items = append(l.items, item{kind: itemGap, height: l.spacing}, l.textItem("Download vCard", regular, linkColor))
	}

	if disclaimer := sanitize.PlainText(cfg.DisclaimerHTML); disclaimer != "" {
		l.items = append(l.items, item{kind: itemGap, height: l.spacing})
		for _, line := range strings.Split(disclaimer, "\n") {
			l.items = append(l.items, l.textItem(line, regular, textColor))
		}
	}
}

func (l *layout) freeform(markup string) {
	regular := l.faces.face(styleRegular, l.size)
	textColor := colorOr(l.cfg.TextColor, fallbackColor)
	for _, line := range strings.Split(sanitize.PlainText(markup), "\n") {
		if line == "" {
			continue
		}
		l.items = append(l.items, l.textItem(line, regular, textColor))
	}
}

// block appends lines followed by the spacing the HTML cell puts below them.
func (l *layout) block(lines []item) {
	if len(lines) == 0 {
		return
	}
	l.items = append(l.items, lines...)
	l.items = append(l.items, item{kind: itemGap, height: l.spacing})
}

func (l *layout) textItem(text string, face font.Face, c string) item {
	return item{
		kind:   itemText,
		text:   text,
		face:   face,
		color:  c,
		height: math.Ceil(faceSize(face) * lineSpacing),
	}
}

func (l *layout) empty() bool {
	if l.topLogo != nil || l.asideImg != nil || l.headshot != nil {
		return false
	}
	for _, it := range l.items {
		if it.kind == itemText || it.kind == itemRun {
			return false
		}
	}
	return true
}

func (l *layout) pad() float64 {
	return padding * l.scale
}

func (l *layout) asideWidth() float64 {
	var w float64
	if l.asideImg != nil {
		w = float64(l.asideImg.Bounds().Dx())
	}
	if l.headshot != nil {
		w = math.Max(w, float64(l.headshot.Bounds().Dx()))
	}
	if w > 0 {
		w += l.spacing
	}
	return w
}

func (l *layout) asideHeight() float64 {
	var h float64
	if l.asideImg != nil {
		h += float64(l.asideImg.Bounds().Dy())
		if l.headshot != nil {
			h += l.spacing
		}
	}
	if l.headshot != nil {
		h += float64(l.headshot.Bounds().Dy())
	}
	return h
}

func (l *layout) topHeight() float64 {
	if l.topLogo == nil {
		return 0
	}
	return float64(l.topLogo.Bounds().Dy()) + 2*l.spacing
}

func (l *layout) textWidth() float64 {
	var w float64
	for _, it := range l.items {
		switch it.kind {
		case itemText:
			w = math.Max(w, measure(it.face, it.text))
		case itemRun:
			w = math.Max(w, l.runWidth(it))
		}
	}
	return w
}

func (l *layout) runWidth(it item) float64 {
	var w float64
	for i, label := range it.run {
		if i > 0 {
			w += socialGap * l.scale
		}
		w += measure(it.face, label)
	}
	return w
}

func (l *layout) textHeight() float64 {
	var h float64
	for _, it := range l.items {
		h += it.height
	}
	// the trailing gap of the last block has no content below it
	if n := len(l.items); n > 0 && l.items[n-1].kind == itemGap {
		h -= l.items[n-1].height
	}
	return h
}

func (l *layout) dimensions() (int, int) {
	pad := l.pad()
	inner := l.asideWidth() + l.textWidth()
	if l.topLogo != nil {
		inner = math.Max(inner, float64(l.topLogo.Bounds().Dx()))
	}
	body := math.Max(l.asideHeight(), l.textHeight())
	width := int(math.Ceil(inner + 2*pad))
	height := int(math.Ceil(pad + l.topHeight() + body + pad))
	return width, height
}

func (l *layout) draw(dc *gg.Context) {
	pad := l.pad()
	width := float64(dc.Width())
	rtl := l.cfg.RTL()
	y := pad

	if l.topLogo != nil {
		y += l.spacing
		x := pad
		if rtl {
			x = width - pad - float64(l.topLogo.Bounds().Dx())
		}
		dc.DrawImage(l.topLogo, int(x), int(y))
		y += float64(l.topLogo.Bounds().Dy()) + l.spacing
	}

	aside := l.asideWidth()
	asideX := pad
	if rtl {
		asideX = width - pad - (aside - l.spacing)
	}
	ay := y
	if l.asideImg != nil {
		dc.DrawImage(l.asideImg, int(asideX), int(ay))
		ay += float64(l.asideImg.Bounds().Dy()) + l.spacing
	}
	if l.headshot != nil {
		r := float64(l.headshot.Bounds().Dx()) / 2
		dc.DrawCircle(asideX+r, ay+r, r)
		dc.Clip()
		dc.DrawImage(l.headshot, int(asideX), int(ay))
		dc.ResetClip()
	}

	left := pad + aside
	right := width - pad
	if rtl {
		left = pad
		right = width - pad - aside
	}

	for _, it := range l.items {
		switch it.kind {
		case itemText:
			l.drawText(dc, it, it.text, left, right, y, rtl)
		case itemRun:
			x := left
			if rtl {
				x = right - l.runWidth(it)
			}
			for _, label := range it.run {
				l.drawText(dc, it, label, x, right, y, false)
				x += measure(it.face, label) + socialGap*l.scale
			}
		case itemRule:
			dc.SetHexColor(it.color)
			dc.DrawRectangle(left, y, right-left, it.height)
			dc.Fill()
		}
		y += it.height
	}
}

func (l *layout) drawText(dc *gg.Context, it item, text string, left, right, y float64, alignRight bool) {
	dc.SetFontFace(it.face)
	dc.SetHexColor(it.color)
	ascent := float64(it.face.Metrics().Ascent.Ceil())
	lead := (it.height - float64(it.face.Metrics().Height.Ceil())) / 2
	x := left
	if alignRight {
		x = right - measure(it.face, text)
	}
	dc.DrawString(text, x, y+lead+ascent)
}

func measure(face font.Face, text string) float64 {
	return float64(font.MeasureString(face, text).Ceil())
}

func faceSize(face font.Face) float64 {
	return float64(face.Metrics().Height.Ceil())
}

// colorOr returns c when it is a hex color gg can parse, fallback otherwise.
func colorOr(c, fallback string) string {
	c = strings.TrimSpace(c)
	if hexColor.MatchString(c) {
		return c
	}
	return fallback
}
