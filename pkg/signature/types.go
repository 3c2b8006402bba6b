package signature

import "strings"

// LogoPosition controls where the logo renders when ShowLogo is enabled.
type LogoPosition string

const (
	LogoTop  LogoPosition = "top"
	LogoLeft LogoPosition = "left"
)

// SeparatorStyle selects the symbol placed between inline contact items.
type SeparatorStyle string

const (
	SeparatorDot    SeparatorStyle = "dot"
	SeparatorPipe   SeparatorStyle = "pipe"
	SeparatorSlash  SeparatorStyle = "slash"
	SeparatorDash   SeparatorStyle = "dash"
	SeparatorNone   SeparatorStyle = "none"
	SeparatorCustom SeparatorStyle = "custom"
)

// Direction describes the text direction of the rendered block. DirectionAuto
// is resolved to ltr or rtl by Normalize.
type Direction string

const (
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
	DirectionAuto Direction = "auto"
)

// SocialLink is a labelled profile URL. The list carries no uniqueness
// constraint and links with an empty Href are skipped when rendering.
type SocialLink struct {
	Label string `json:"label" yaml:"label" koanf:"label"`
	Href  string `json:"href" yaml:"href" koanf:"href"`
}

// Config is the signature configuration record: content plus presentation.
type Config struct {
	// Identity
	FirstName    string `json:"firstName" yaml:"first_name" koanf:"first_name"`
	LastName     string `json:"lastName" yaml:"last_name" koanf:"last_name"`
	Title        string `json:"title" yaml:"title" koanf:"title"`
	Department   string `json:"department" yaml:"department" koanf:"department"`
	Company      string `json:"company" yaml:"company" koanf:"company"`
	Email        string `json:"email" yaml:"email" koanf:"email"`
	Phone        string `json:"phone" yaml:"phone" koanf:"phone"`
	Mobile       string `json:"mobile" yaml:"mobile" koanf:"mobile"`
	Website      string `json:"website" yaml:"website" koanf:"website"`
	WebsiteLabel string `json:"websiteLabel" yaml:"website_label" koanf:"website_label"`
	Address1     string `json:"address1" yaml:"address1" koanf:"address1"`
	Address2     string `json:"address2" yaml:"address2" koanf:"address2"`
	LogoURL      string `json:"logoUrl" yaml:"logo_url" koanf:"logo_url"`
	HeadshotURL  string `json:"headshotUrl" yaml:"headshot_url" koanf:"headshot_url"`

	// Design
	FontFamily   string `json:"fontFamily" yaml:"font_family" koanf:"font_family"`
	FontSize     int    `json:"fontSize" yaml:"font_size" koanf:"font_size"`
	Accent       string `json:"accent" yaml:"accent" koanf:"accent"`
	TextColor    string `json:"textColor" yaml:"text_color" koanf:"text_color"`
	LinkColor    string `json:"linkColor" yaml:"link_color" koanf:"link_color"`
	NameBold     bool   `json:"nameBold" yaml:"name_bold" koanf:"name_bold"`
	TitleItalic  bool   `json:"titleItalic" yaml:"title_italic" koanf:"title_italic"`
	ShowDivider  bool   `json:"showDivider" yaml:"show_divider" koanf:"show_divider"`
	DividerColor string `json:"dividerColor" yaml:"divider_color" koanf:"divider_color"`
	Spacing      int    `json:"spacing" yaml:"spacing" koanf:"spacing"`

	// Layout
	ShowLogo        bool           `json:"showLogo" yaml:"show_logo" koanf:"show_logo"`
	LogoPosition    LogoPosition   `json:"logoPosition" yaml:"logo_position" koanf:"logo_position"`
	SeparatorStyle  SeparatorStyle `json:"separatorStyle" yaml:"separator_style" koanf:"separator_style"`
	CustomSeparator string         `json:"customSeparator" yaml:"custom_separator" koanf:"custom_separator"`

	// Social
	ShowSocial     bool         `json:"showSocial" yaml:"show_social" koanf:"show_social"`
	Social         []SocialLink `json:"social" yaml:"social" koanf:"social"`
	SocialUseIcons bool         `json:"socialUseIcons" yaml:"social_use_icons" koanf:"social_use_icons"`

	// Advanced
	Direction      Direction `json:"direction" yaml:"direction" koanf:"direction"`
	IncludeVCard   bool      `json:"includeVcard" yaml:"include_vcard" koanf:"include_vcard"`
	VCardURL       string    `json:"vcardUrl" yaml:"vcard_url" koanf:"vcard_url"`
	UTMParams      string    `json:"utmParams" yaml:"utm_params" koanf:"utm_params"`
	DisclaimerHTML string    `json:"disclaimerHtml" yaml:"disclaimer_html" koanf:"disclaimer_html"`
}

// RTL reports whether the block renders right-to-left.
func (c Config) RTL() bool {
	return c.Direction == DirectionRTL
}

// FullName joins first and last name, trimming the gap when either is empty.
func (c Config) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// TitleLine joins title and department with a middle dot.
func (c Config) TitleLine() string {
	return joinNonEmpty(" · ", c.Title, c.Department)
}

// AddressLine joins both address lines with a comma.
func (c Config) AddressLine() string {
	return joinNonEmpty(", ", c.Address1, c.Address2)
}

// LogoShown reports whether the logo renders at the given position.
func (c Config) LogoShown(pos LogoPosition) bool {
	return c.ShowLogo && strings.TrimSpace(c.LogoURL) != "" && c.LogoPosition == pos
}

// HasContact reports whether any contact detail is present.
func (c Config) HasContact() bool {
	return c.Email != "" || c.Website != "" || c.Phone != "" || c.Mobile != "" || c.AddressLine() != ""
}

// VisibleSocial returns the links that render: none when ShowSocial is off,
// otherwise every link with a non-empty href, in order.
func (c Config) VisibleSocial() []SocialLink {
	if !c.ShowSocial {
		return nil
	}
	out := make([]SocialLink, 0, len(c.Social))
	for _, link := range c.Social {
		if strings.TrimSpace(link.Href) == "" {
			continue
		}
		out = append(out, link)
	}
	return out
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	if c.Social != nil {
		out.Social = append([]SocialLink(nil), c.Social...)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, sep)
}
