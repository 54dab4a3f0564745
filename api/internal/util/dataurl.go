package util

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var ErrNotDataURL = errors.New("not a base64 data URL")

func SniffMimeHTTP(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	return http.DetectContentType(b)
}

func MakeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// DecodeDataURL splits data:<mime>;base64,<payload> and decodes the payload.
// Standard base64 is tried first, then the URL-safe alphabet.
func DecodeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return nil, "", ErrNotDataURL
	}
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return nil, "", ErrNotDataURL
	}
	meta := s[len("data:"):idx]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", ErrNotDataURL
	}
	mime := strings.TrimSuffix(meta, ";base64")
	payload := s[idx+1:]

	if b, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return b, mime, nil
	} else if b2, err2 := base64.URLEncoding.DecodeString(payload); err2 == nil {
		return b2, mime, nil
	} else {
		return nil, "", err
	}
}

// PickMIME prefers the declared type, then sniffs the bytes.
func PickMIME(declared string, data []byte) string {
	if d := strings.TrimSpace(declared); d != "" {
		return d
	}
	if len(data) > 0 {
		return SniffMimeHTTP(data)
	}
	return "image/png"
}

// ExtForMIME maps the image types the generator returns to a file extension.
func ExtForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
