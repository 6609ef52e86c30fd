package utils

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCodePlaceholder is stored until a real QR artifact has been generated
const QRCodePlaceholder = "none"

// GenerateQRCode renders content into a PNG under dir and returns the file path
func GenerateQRCode(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "uploads/"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".png")
	if err := qrcode.WriteFile(content, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("write qrcode %s: %w", path, err)
	}

	return path, nil
}
