package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Fresh Orange Juice")
	assert.True(t, strings.HasPrefix(sku, "FRESH-ORANGE-JUICE-"))

	// extra whitespace collapses
	sku = GenerateSKU("  cola   zero ")
	assert.True(t, strings.HasPrefix(sku, "COLA-ZERO-"))
}

func TestGenerateProductCode(t *testing.T) {
	code, err := GenerateProductCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestGenerateBarcodeValue(t *testing.T) {
	value, err := GenerateBarcodeValue()
	require.NoError(t, err)
	assert.Len(t, value, 13)
	for _, r := range value {
		assert.True(t, r >= '0' && r <= '9')
	}
}
