package main

import (
	"strings"

	"charm-wallet-connect/helpers"
	"charm-wallet-connect/styles"
	"charm-wallet-connect/views/connect"
	logview "charm-wallet-connect/views/log"
	"charm-wallet-connect/views/providers"
	"charm-wallet-connect/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

// panel border (1) + top padding (1) / left padding (2)
const (
	panelContentOffsetX = 3
	panelContentOffsetY = 2
)

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	titleText := lipgloss.NewStyle().
		Bold(true).
		Render(helpers.FadeString("wallet connect", "#7EE787", "#82CFFD"))

	// Provider status with dot
	var providerDisplay string
	switch status := m.machine.Status(); status {
	case wallet.NoWallet:
		providerDisplay = styles.Dot(false, errorColor, "No wallet")
	case wallet.Connected:
		providerDisplay = styles.Dot(true, cAccent, m.provider.URL())
	default:
		providerDisplay = styles.Dot(false, cWarn, m.provider.URL()+" ("+status.String()+")")
	}

	var headerLine string
	titleWidth := lipgloss.Width(titleText)
	providerWidth := lipgloss.Width(providerDisplay)
	if titleWidth+providerWidth+2 > availableWidth {
		// Not enough space, stack vertically
		headerLine = titleText + "\n" + providerDisplay
	} else {
		spacer := strings.Repeat(" ", availableWidth-titleWidth-providerWidth)
		headerLine = titleText + spacer + providerDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

func (m *model) pageContent() (string, connect.ClickableArea) {
	snap := m.machine.Snapshot()
	content, area := connect.Render(snap, m.machine.InteractionDisabled(), m.spin.View(), m.rejected)

	switch snap.Status {
	case wallet.NoWallet:
		if m.formNotice != "" {
			content += "\n\n" + lipgloss.NewStyle().Foreground(cAccent).Render(m.formNotice)
		}
	case wallet.Connected:
		if m.showQR {
			if qr := connect.QRCode(snap.Address); qr != "" {
				content += "\n\n" + qr
			}
		}
	}

	if m.copiedMsg != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}
	return content, area
}

func (m *model) View() string {
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent, nav string
	if m.addingProvider && m.form != nil {
		m.clickableBtn = connect.ClickableArea{}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(providers.Render(m.form))
		nav = providers.Nav(m.w - 2)
	} else {
		content, area := m.pageContent()
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = connect.Nav(m.w-2, m.machine.Status(), m.logEnabled)

		// Button position is relative to the panel content
		if area.Width > 0 {
			area.X += panelContentOffsetX
			area.Y += lipgloss.Height(headerPanel) + panelContentOffsetY
		}
		m.clickableBtn = area
	}

	sections := []string{headerPanel, pageContent, nav}

	// Render log panel only if enabled
	if m.logEnabled {
		// Keep the viewport height in sync with the rendered panel
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
