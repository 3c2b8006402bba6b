package signature

// Fonts lists the system-safe font stacks offered by the configurator. Web
// fonts are left out on purpose since Outlook falls back unpredictably.
var Fonts = []string{
	"Arial, Helvetica, sans-serif",
	"Calibri, 'Segoe UI', sans-serif",
	"Helvetica, Arial, sans-serif",
	"Segoe UI, Tahoma, Geneva, Verdana, sans-serif",
	"Georgia, serif",
	"Times New Roman, Times, serif",
	"Verdana, Geneva, Tahoma, sans-serif",
}

const (
	MinFontSize = 10
	MaxFontSize = 18
	MinSpacing  = 0
	MaxSpacing  = 24

	// MaxCustomSeparator is the rune limit for a custom separator.
	MaxCustomSeparator = 3

	DefaultUTMParams = "utm_source=email_signature"
)

// Default returns the starter configuration shown when the configurator
// opens or is reset.
func Default() Config {
	return Config{
		FirstName:    "Alex",
		LastName:     "Doe",
		Title:        "Senior Product Manager",
		Department:   "Product",
		Company:      "Acme, Inc.",
		Email:        "alex.doe@acme.com",
		Phone:        "+1 (555) 123-4567",
		Mobile:       "+1 (555) 987-6543",
		Website:      "https://acme.com",
		WebsiteLabel: "Website",
		Address1:     "123 Market Street",
		Address2:     "San Francisco, CA 94103",
		LogoURL:      "https://upload.wikimedia.org/wikipedia/commons/thumb/7/77/Generic_Logo.svg/240px-Generic_Logo.svg.png",

		FontFamily:   Fonts[1],
		FontSize:     13,
		Accent:       "#2b6cb0",
		TextColor:    "#1f2937",
		LinkColor:    "#2b6cb0",
		NameBold:     true,
		ShowDivider:  true,
		DividerColor: "#e5e7eb",
		Spacing:      8,

		ShowLogo:        true,
		LogoPosition:    LogoTop,
		SeparatorStyle:  SeparatorDot,
		CustomSeparator: "•",

		ShowSocial: true,
		Social: []SocialLink{
			{Label: "LinkedIn", Href: "https://www.linkedin.com/company/acme"},
			{Label: "Twitter", Href: "https://twitter.com/acme"},
		},

		Direction:      DirectionLTR,
		UTMParams:      DefaultUTMParams,
		DisclaimerHTML: `<span style="color:#6b7280">This message may contain confidential information.</span>`,
	}
}
