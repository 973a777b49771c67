package helpers

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

// knownChains maps well-known chain ids to display names
var knownChains = map[uint64]string{
	1:        "Ethereum Mainnet",
	10:       "OP Mainnet",
	56:       "BNB Smart Chain",
	137:      "Polygon",
	8453:     "Base",
	42161:    "Arbitrum One",
	17000:    "Holesky",
	11155111: "Sepolia",
}

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a 0x-prefixed hex address
func IsValidEthAddress(s string) bool {
	return len(s) == 42 && common.IsHexAddress(s)
}

// ChainName returns a friendly name for a hex chain id, or "" when the id is
// unknown or not hex. The id itself is never rewritten.
func ChainName(chainID string) string {
	n, err := hexutil.DecodeUint64(chainID)
	if err != nil {
		return ""
	}
	if name, ok := knownChains[n]; ok {
		return name
	}
	return fmt.Sprintf("chain %d", n)
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	if s == "" {
		return s
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len([]rune(s)))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var result string
	i := 0
	for _, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		result += baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c))
		i++
	}
	return result
}
