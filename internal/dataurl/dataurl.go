// Package dataurl converts images to and from inline base64 data URLs, the
// form in which catalog and payment-proof images travel and are stored.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrMalformed is returned for strings that are not base64 data URLs.
var ErrMalformed = errors.New("malformed data url")

const base64Marker = ";base64"

// Encode wraps data in a data URL whose media type is sniffed from content.
func Encode(data []byte) string {
	media, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return "data:" + media + base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}

// EncodeFile reads path and returns its contents as a data URL.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Encode(data), nil
}

// Parse splits a base64 data URL into its declared media type and payload.
func Parse(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrMalformed
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, base64Marker) {
		return "", nil, ErrMalformed
	}
	media := strings.TrimSuffix(meta, base64Marker)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return media, data, nil
}

// IsImage reports whether s is a data URL that both declares and contains an image.
func IsImage(s string) bool {
	media, data, err := Parse(s)
	if err != nil || !strings.HasPrefix(media, "image/") {
		return false
	}
	return strings.HasPrefix(mimetype.Detect(data).String(), "image/")
}
