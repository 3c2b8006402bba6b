package markup

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/signature"
	"github.com/goliatone/go-emailsig/pkg/vcard"
)

// signatureView is the template context. Templates address fields by json
// tag; every string is autoescaped except Disclaimer.
type signatureView struct {
	Font      string `json:"font"`
	Size      int    `json:"size"`
	Color     string `json:"color"`
	LinkColor string `json:"link_color"`
	Accent    string `json:"accent"`
	Spacing   int    `json:"spacing"`
	RTL       bool   `json:"rtl"`
	Separator string `json:"separator"`

	LogoTop  string `json:"logo_top,omitempty"`
	LogoLeft string `json:"logo_left,omitempty"`
	Headshot string `json:"headshot,omitempty"`
	HasAside bool   `json:"has_aside"`

	Identity []identityLine `json:"identity"`
	Contact  []contactLine  `json:"contact"`

	ShowDivider  bool   `json:"show_divider"`
	DividerColor string `json:"divider_color"`

	Social    []socialLink `json:"social"`
	UseIcons  bool         `json:"use_icons"`
	VCardHref string       `json:"vcard_href,omitempty"`

	Disclaimer string `json:"disclaimer,omitempty"`
}

type identityLine struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// contactLine holds either a run of links joined by the separator or a
// single text span.
type contactLine struct {
	Links []contactLink `json:"links,omitempty"`
	Text  string        `json:"text,omitempty"`
}

type contactLink struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	External bool   `json:"external"`
}

type socialLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

func buildView(cfg signature.Config) (signatureView, error) {
	spacing := cfg.Spacing
	if spacing < 0 {
		spacing = 0
	}

	view := signatureView{
		Font:         cfg.FontFamily,
		Size:         cfg.FontSize,
		Color:        cfg.TextColor,
		LinkColor:    cfg.LinkColor,
		Accent:       cfg.Accent,
		Spacing:      spacing,
		RTL:          cfg.RTL(),
		Separator:    signature.ResolveSeparator(cfg),
		ShowDivider:  cfg.ShowDivider,
		DividerColor: cfg.DividerColor,
		UseIcons:     cfg.SocialUseIcons,
		Disclaimer:   strings.TrimSpace(cfg.DisclaimerHTML),
	}

	if cfg.LogoShown(signature.LogoTop) {
		view.LogoTop = cfg.LogoURL
	}
	if cfg.LogoShown(signature.LogoLeft) {
		view.LogoLeft = cfg.LogoURL
	}
	view.Headshot = strings.TrimSpace(cfg.HeadshotURL)
	view.HasAside = view.LogoLeft != "" || view.Headshot != ""

	view.Identity = identityLines(cfg)
	view.Contact = contactLines(cfg, view.Separator)

	for _, link := range cfg.VisibleSocial() {
		view.Social = append(view.Social, socialLink{
			Href:  signature.AppendUTM(link.Href, cfg.UTMParams),
			Label: link.Label,
		})
	}

	if cfg.IncludeVCard {
		view.VCardHref = strings.TrimSpace(cfg.VCardURL)
		if view.VCardHref == "" {
			uri, err := vcard.DataURI(cfg)
			if err != nil {
				return view, err
			}
			view.VCardHref = uri
		}
	}
	return view, nil
}

func identityLines(cfg signature.Config) []identityLine {
	var lines []identityLine
	if name := cfg.FullName(); name != "" {
		weight := "400"
		if cfg.NameBold {
			weight = "700"
		}
		lines = append(lines, identityLine{
			Text:  name,
			Style: "font-weight:" + weight + ";font-size:" + px(cfg.FontSize+1) + ";color:" + cfg.TextColor,
		})
	}
	if title := cfg.TitleLine(); title != "" {
		style := "color:" + cfg.TextColor
		if cfg.TitleItalic {
			style = "font-style:italic;" + style
		}
		lines = append(lines, identityLine{Text: title, Style: style})
	}
	if company := strings.TrimSpace(cfg.Company); company != "" {
		lines = append(lines, identityLine{Text: company, Style: "color:" + cfg.TextColor})
	}
	return lines
}

func contactLines(cfg signature.Config, separator string) []contactLine {
	var lines []contactLine

	var links []contactLink
	if email := strings.TrimSpace(cfg.Email); email != "" {
		links = append(links, contactLink{Href: "mailto:" + email, Text: email})
	}
	if website := strings.TrimSpace(cfg.Website); website != "" {
		links = append(links, contactLink{
			Href:     signature.AppendUTM(website, cfg.UTMParams),
			Text:     cfg.WebsiteText(),
			External: true,
		})
	}
	if len(links) > 0 {
		lines = append(lines, contactLine{Links: links})
	}

	var phones []string
	if phone := strings.TrimSpace(cfg.Phone); phone != "" {
		phones = append(phones, "Tel: "+phone)
	}
	if mobile := strings.TrimSpace(cfg.Mobile); mobile != "" {
		phones = append(phones, "Mobile: "+mobile)
	}
	if len(phones) > 0 {
		glue := " "
		if separator != "" {
			glue = " " + separator + " "
		}
		lines = append(lines, contactLine{Text: strings.Join(phones, glue)})
	}

	if address := cfg.AddressLine(); address != "" {
		lines = append(lines, contactLine{Text: address})
	}
	return lines
}

func px(v int) string {
	return strconv.Itoa(v) + "px"
}
