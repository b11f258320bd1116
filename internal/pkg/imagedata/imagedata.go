// Package imagedata validates inline images sent as data URLs.
package imagedata

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrNotImage = errors.New("not an image data URL")
	ErrTooLarge = errors.New("image too large")
)

// Validate checks that s is a base64 "data:image/..." URL whose decoded payload
// does not exceed maxBytes.
func Validate(s string, maxBytes int) error {
	if !strings.HasPrefix(s, "data:image/") {
		return ErrNotImage
	}
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return ErrNotImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return ErrTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ErrNotImage
	}
	if len(raw) > maxBytes {
		return ErrTooLarge
	}
	return nil
}
