// Package vcard encodes a signature configuration as a vCard 3.0 contact
// card (RFC 2426) so recipients can save the sender in one click.
package vcard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	govcard "github.com/emersion/go-vcard"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

const (
	// ContentType is the MIME type of Encode output.
	ContentType = "text/vcard; charset=utf-8"

	// maxLineOctets is the folding limit, excluding the CRLF.
	maxLineOctets = 75
	crlf          = "\r\n"
)

// Card builds the contact card for cfg. Empty fields are omitted; VERSION,
// N and FN are always present.
func Card(cfg signature.Config) govcard.Card {
	card := make(govcard.Card)
	card.SetValue(govcard.FieldVersion, "3.0")
	card.SetName(&govcard.Name{
		Field:      &govcard.Field{},
		FamilyName: strings.TrimSpace(cfg.LastName),
		GivenName:  strings.TrimSpace(cfg.FirstName),
	})
	card.SetValue(govcard.FieldFormattedName, cfg.FullName())

	if cfg.Company != "" || cfg.Department != "" {
		org := strings.TrimSpace(cfg.Company)
		if dept := strings.TrimSpace(cfg.Department); dept != "" {
			org += ";" + dept
		}
		card.SetValue(govcard.FieldOrganization, org)
	}
	if title := strings.TrimSpace(cfg.Title); title != "" {
		card.SetValue(govcard.FieldTitle, title)
	}
	if email := strings.TrimSpace(cfg.Email); email != "" {
		card.Add(govcard.FieldEmail, &govcard.Field{
			Value:  email,
			Params: govcard.Params{govcard.ParamType: {"internet", "pref"}},
		})
	}
	if phone := strings.TrimSpace(cfg.Phone); phone != "" {
		card.Add(govcard.FieldTelephone, &govcard.Field{
			Value:  phone,
			Params: govcard.Params{govcard.ParamType: {govcard.TypeWork, govcard.TypeVoice}},
		})
	}
	if mobile := strings.TrimSpace(cfg.Mobile); mobile != "" {
		card.Add(govcard.FieldTelephone, &govcard.Field{
			Value:  mobile,
			Params: govcard.Params{govcard.ParamType: {govcard.TypeCell}},
		})
	}
	if website := strings.TrimSpace(cfg.Website); website != "" {
		card.SetValue(govcard.FieldURL, website)
	}
	if cfg.Address1 != "" || cfg.Address2 != "" {
		card.AddAddress(&govcard.Address{
			Field:         &govcard.Field{Params: govcard.Params{govcard.ParamType: {govcard.TypeWork}}},
			StreetAddress: strings.TrimSpace(cfg.Address1),
			Locality:      strings.TrimSpace(cfg.Address2),
		})
	}
	if isRemote(cfg.HeadshotURL) {
		card.Add(govcard.FieldPhoto, &govcard.Field{
			Value:  cfg.HeadshotURL,
			Params: govcard.Params{govcard.ParamValue: {"uri"}},
		})
	}
	for _, link := range cfg.VisibleSocial() {
		card.Add("X-SOCIALPROFILE", &govcard.Field{
			Value:  link.Href,
			Params: govcard.Params{govcard.ParamType: {paramValue(link.Label)}},
		})
	}
	return card
}

// Encode renders cfg as a vCard 3.0 document with CRLF line endings and
// content lines folded at 75 octets.
func Encode(cfg signature.Config) (string, error) {
	var buf bytes.Buffer
	if err := govcard.NewEncoder(&buf).Encode(Card(cfg)); err != nil {
		return "", fmt.Errorf("vcard: encode: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), crlf), crlf)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(fold(line))
		b.WriteString(crlf)
	}
	return b.String(), nil
}

// DataURI returns Encode output as a base64 data URI usable in an href.
func DataURI(cfg signature.Config) (string, error) {
	card, err := Encode(cfg)
	if err != nil {
		return "", err
	}
	return "data:text/vcard;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(card)), nil
}

// paramValue reduces a label to characters allowed in an unquoted parameter.
func paramValue(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "other"
	}
	return b.String()
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}

// fold splits a content line into chunks of at most 75 octets, continuation
// lines starting with a single space. Multi-byte runes are never split.
func fold(content string) string {
	if len(content) <= maxLineOctets {
		return content
	}

	var b strings.Builder
	limit := maxLineOctets
	width := 0
	for _, r := range content {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = len(string(utf8.RuneError))
		}
		if width+size > limit {
			b.WriteString(crlf + " ")
			// the leading space counts toward the next line
			limit = maxLineOctets - 1
			width = 0
		}
		b.WriteRune(r)
		width += size
	}
	return b.String()
}
