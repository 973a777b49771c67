package connect

import (
	"strings"

	"charm-wallet-connect/helpers"
	"charm-wallet-connect/styles"
	"charm-wallet-connect/wallet"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
)

// NoWalletMessage is the static instruction shown when no provider exists
const NoWalletMessage = "Please, install an ethereum compatible wallet"

// ClickableArea represents a clickable region for mouse support
type ClickableArea struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) is inside the area
func (a ClickableArea) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Button renders the connect button for the given state
func Button(snap wallet.Snapshot, disabled bool, spinnerView string) string {
	style := styles.ButtonStyle
	if disabled {
		style = styles.DisabledButtonStyle
	}

	var label string
	switch snap.Status {
	case wallet.Loading:
		label = spinnerView + " Processing..."
	case wallet.Disconnected:
		label = "🦊 Connect Wallet"
	default:
		label = snap.Address
	}
	return style.Render(label)
}

// Render renders the connection panel. The returned area is the button's
// position relative to the top-left corner of the returned content.
func Render(snap wallet.Snapshot, disabled bool, spinnerView string, rejected bool) (string, ClickableArea) {
	h := styles.TitleStyle.Render("Wallet Connection")

	if snap.Status == wallet.NoWallet {
		msg := styles.WarnStyle.Render("⚠ " + NoWalletMessage)
		hint := styles.HintStyle.Render("Press ") + styles.Key("a") +
			styles.HintStyle.Render(" to add a provider endpoint for the next launch.")
		return h + "\n\n" + msg + "\n\n" + hint, ClickableArea{}
	}

	button := Button(snap, disabled, spinnerView)
	lines := []string{h, "", button}
	area := ClickableArea{
		X:      0,
		Y:      2,
		Width:  lipgloss.Width(button),
		Height: lipgloss.Height(button),
	}

	if rejected && snap.Status == wallet.Disconnected {
		lines = append(lines, styles.HintStyle.Italic(true).Render("Request was not approved. Try again."))
	}

	lines = append(lines, "", ChainLine(snap.ChainID), AddressLine(snap.Address))
	return strings.Join(lines, "\n"), area
}

// ChainLine renders the chain id with a friendly name when known
func ChainLine(chainID string) string {
	value := styles.ValueStyle.Render(chainID)
	if name := helpers.ChainName(chainID); name != "" {
		value += styles.HintStyle.Render("  (" + name + ")")
	}
	return styles.LabelStyle.Render("Chain ID: ") + value
}

// AddressLine renders the wallet address
func AddressLine(address string) string {
	style := styles.ValueStyle
	if address == wallet.Unavailable {
		style = styles.HintStyle
	}
	return styles.LabelStyle.Render("Wallet Address: ") + style.Render(address)
}

// QRCode renders address as a QR code, or "" when there is nothing to encode
func QRCode(address string) string {
	if !helpers.IsValidEthAddress(address) {
		return ""
	}
	var sb strings.Builder
	qrterminal.GenerateWithConfig("ethereum:"+address, qrterminal.Config{
		Level:          qrterminal.L,
		Writer:         &sb,
		QuietZone:      1,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
	})
	return sb.String()
}

// Nav returns the navigation bar for the connection view
func Nav(width int, status wallet.Status, logEnabled bool) string {
	var keys []string
	switch status {
	case wallet.NoWallet:
		keys = append(keys, styles.Key("a")+" add provider")
	case wallet.Disconnected:
		keys = append(keys, styles.Key("Enter")+" connect")
	case wallet.Connected:
		keys = append(keys, styles.Key("y")+" copy address", styles.Key("r")+" QR code")
	}
	logLabel := " show log"
	if logEnabled {
		logLabel = " hide log"
	}
	keys = append(keys, styles.Key("l")+logLabel, styles.Key("q")+" quit")

	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}
