package service

import (
	qrcode "github.com/skip2/go-qrcode"
)

// BadgeQRCode renders the agent badge content as a PNG. Field staff scan
// these at shared check-in kiosks.
func BadgeQRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}
