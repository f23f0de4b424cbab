// Package barcode renders an item's redeem code as a scannable image.
// Codes that are valid EAN-13 numbers become barcodes, everything else
// becomes a QR code.
package barcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	bcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
)

const (
	eanWidth  = 300
	eanHeight = 120
	qrSize    = 256
)

// CheckDigit computes the EAN-13 check digit for the first 12 digits of code.
// The code must contain at least 12 digit characters.
func CheckDigit(code string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(code[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// IsValidEAN13 reports whether code is 13 digits with a correct check digit.
func IsValidEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return int(code[12]-'0') == CheckDigit(code)
}

// CodeImage renders the redeem code as a base64-encoded PNG.
func CodeImage(redeemCode string) (string, error) {
	var (
		bc  bcode.Barcode
		err error
	)

	if IsValidEAN13(redeemCode) {
		bc, err = ean.Encode(redeemCode)
		if err == nil {
			bc, err = bcode.Scale(bc, eanWidth, eanHeight)
		}
	} else {
		bc, err = qr.Encode(redeemCode, qr.M, qr.Auto)
		if err == nil {
			bc, err = bcode.Scale(bc, qrSize, qrSize)
		}
	}
	if err != nil {
		return "", fmt.Errorf("can't encode redeem code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, bc); err != nil {
		return "", fmt.Errorf("can't render PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
