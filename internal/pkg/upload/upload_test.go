package upload

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestReadImage(t *testing.T) {
	img, err := ReadImage(bytes.NewReader(pngHeader), 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, int64(len(pngHeader)), img.Size())

	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	img, err = ReadImage(bytes.NewReader(jpeg), 1024)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", img.Ext)

	webp := []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
	img, err = ReadImage(bytes.NewReader(webp), 1024)
	require.NoError(t, err)
	assert.Equal(t, ".webp", img.Ext)
}

func TestReadImageRejects(t *testing.T) {
	_, err := ReadImage(bytes.NewReader(pngHeader), 4)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadImage(strings.NewReader("<svg></svg>"), 1024)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ReadImage(strings.NewReader(""), 1024)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadImage(nil, 1024)
	assert.ErrorIs(t, err, ErrEmpty)
}
