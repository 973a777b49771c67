package helpers

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestShortenAddr(t *testing.T) {
	assert.Equal(t, "0xd8dA…6045", ShortenAddr("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.Equal(t, "0xAA", ShortenAddr("0xAA"))
	assert.Equal(t, "", ShortenAddr(""))
}

func TestIsValidEthAddress(t *testing.T) {
	assert.True(t, IsValidEthAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.False(t, IsValidEthAddress("d8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.False(t, IsValidEthAddress("0x1234"))
	assert.False(t, IsValidEthAddress("Unavailable"))
}

func TestChainName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"0x1", "Ethereum Mainnet"},
		{"0xaa36a7", "Sepolia"},
		{"0x2105", "Base"},
		{"0x539", "chain 1337"},
		{"", ""},
		{"1", ""},
		{"0xzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ChainName(tt.id))
		})
	}
}

func TestFadeStringKeepsText(t *testing.T) {
	assert.Equal(t, "wallet connect", ansi.Strip(FadeString("wallet connect", "#7EE787", "#82CFFD")))
	assert.Equal(t, "", FadeString("", "#7EE787", "#82CFFD"))
}
