package providers

import (
	"fmt"
	"net/url"
	"strings"

	"charm-wallet-connect/config"
	"charm-wallet-connect/provider"
	"charm-wallet-connect/styles"

	"github.com/charmbracelet/huh"
)

// Form field storage (package-level to avoid pointer-to-copy issues)
var (
	TempName string
	TempURL  string
)

// CreateForm creates the "add provider endpoint" form
func CreateForm() *huh.Form {
	TempName = ""
	TempURL = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider Name").
				Description("A friendly name for this wallet endpoint").
				Value(&TempName).
				Placeholder("Frame"),

			huh.NewInput().
				Title("Provider URL").
				Description("Websocket or IPC endpoint of your wallet").
				Value(&TempURL).
				Placeholder(config.LocalProviderURL).
				Validate(ValidateURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// ValidateURL accepts ws(s) URLs and absolute IPC socket paths
func ValidateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("url is required")
	}
	if strings.HasPrefix(s, "/") {
		return nil
	}
	if err := provider.CheckTransport(s); err != nil {
		return fmt.Errorf("http cannot deliver wallet events, use ws:// or an IPC path")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url")
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// Render renders the form panel
func Render(form *huh.Form) string {
	h := styles.TitleStyle.Render("Add Provider")
	hint := styles.HintStyle.Render("Saved to your config; it is probed on the next launch.")
	if form == nil {
		return h
	}
	return h + "\n" + hint + "\n\n" + form.View()
}

// Nav returns the navigation bar while the form is open
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("Enter") + " next/save",
		styles.Key("Esc") + " cancel",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
