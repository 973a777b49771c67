package log

import (
	"charm-wallet-connect/styles"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Buffer collects logger output. Watchers log from their own goroutines while
// the view reads it, so writes and reads are serialized.
type Buffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

// PanelHeight returns the viewport height for a screen of the given height
func PanelHeight(height int) int {
	// header (3 lines), nav (1 line), title + borders (4 lines), margins (2 lines)
	reservedHeight := 10
	availableHeight := max(5, height-reservedHeight)

	// at most a third of the screen or 15 lines
	maxLogHeight := min(height/3, 15)
	return max(1, min(availableHeight, maxLogHeight))
}

// Render renders the log panel with dynamic height calculation
func Render(width, height int, logReady bool, logSpinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	logPanelHeight := PanelHeight(height)
	vp.Height = logPanelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(max(0, width-2)).
		Height(logPanelHeight + 2) // +2 for title and spacing

	if !logReady {
		initMsg := "initializing...\n" + logSpinnerView
		return border.Render(title + "\n\n" + initMsg)
	}

	scrollInfo := ""
	if vp.TotalLineCount() > vp.Height {
		scrollPercent := int(vp.ScrollPercent() * 100)
		scrollInfo = lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", scrollPercent))
	}

	return border.Render(title + scrollInfo + "\n\n" + vp.View())
}
