package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

func TestDecodeDataURL(t *testing.T) {
	uri := MakeDataURL("image/png", base64.StdEncoding.EncodeToString(pngHeader))

	b, mime, err := DecodeDataURL(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader, b)
}

func TestDecodeDataURLURLSafe(t *testing.T) {
	raw := []byte{0xfb, 0xff, 0xfe}
	uri := "data:image/jpeg;base64," + base64.URLEncoding.EncodeToString(raw)

	b, mime, err := DecodeDataURL(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, raw, b)
}

func TestDecodeDataURLRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"aGVsbG8=",
		"data:image/png;base64",
		"data:text/plain,hello",
	} {
		_, _, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrNotDataURL, s)
	}

	_, _, err := DecodeDataURL("data:image/png;base64,@@@")
	assert.Error(t, err)
}

func TestPickMIME(t *testing.T) {
	assert.Equal(t, "image/webp", PickMIME(" image/webp ", pngHeader))
	assert.Equal(t, "image/png", PickMIME("", pngHeader))
	assert.Equal(t, "image/jpeg", PickMIME("", []byte{0xFF, 0xD8, 0xFF}))
	assert.Equal(t, "image/png", PickMIME("", nil))
}

func TestExtForMIME(t *testing.T) {
	assert.Equal(t, ".jpg", ExtForMIME("image/jpeg"))
	assert.Equal(t, ".webp", ExtForMIME("IMAGE/WEBP"))
	assert.Equal(t, ".png", ExtForMIME("image/png"))
	assert.Equal(t, ".png", ExtForMIME(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 2))
	// 한 is three bytes; a cut inside it backs off to the rune start.
	assert.Equal(t, "a…", Truncate("a한글", 2))
}
