// Package codes generates the identifying values attached to a product:
// SKU, short product code, and barcode value. Only the values are produced;
// rendering them as images is the client's concern.
package codes

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const digits = "0123456789"

// GenerateSKU builds a SKU from the product name: uppercased, spaces
// collapsed to dashes, suffixed with the current unix-millisecond stamp so
// two products with the same name never collide.
func GenerateSKU(name string) string {
	formatted := strings.Join(strings.Fields(strings.ToUpper(name)), "-")
	return fmt.Sprintf("%s-%d", formatted, time.Now().UnixMilli())
}

// GenerateProductCode returns the read-only 6-digit product code.
func GenerateProductCode() (string, error) {
	return gonanoid.Generate(digits, 6)
}

// GenerateBarcodeValue returns a fresh 13-digit numeric barcode value, used
// when the caller did not scan or type one in.
func GenerateBarcodeValue() (string, error) {
	return gonanoid.Generate(digits, 13)
}
