package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/http"
	"strings"
)

// Sniff reports the detected content type of uploaded bytes. Declared
// types from the client are ignored; only the payload decides.
func Sniff(data []byte) string {
	return http.DetectContentType(data)
}

// SanitizeFilename strips path components and control bytes from an
// upload's original name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "\x00", "")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "image"
	}
	return name
}

// DecodeGradcam decodes a base64 Grad-CAM payload (no data-URI prefix) and
// verifies it is a well-formed PNG before it is served.
func DecodeGradcam(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding gradcam base64: %w", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("decoding gradcam png: %w", err)
	}
	return raw, nil
}
