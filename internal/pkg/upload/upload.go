// Package upload reads user-supplied images into memory with a size cap and
// identifies them by content, not by the declared type or file name.
package upload

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

var (
	ErrEmpty           = errors.New("upload: file is empty")
	ErrTooLarge        = errors.New("upload: file exceeds the size limit")
	ErrUnsupportedType = errors.New("upload: only jpeg, png and webp images are accepted")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

func (i Image) Reader() io.Reader { return bytes.NewReader(i.Data) }

func (i Image) Size() int64 { return int64(len(i.Data)) }

// ReadImage reads at most maxBytes from r. Anything longer is rejected.
func ReadImage(r io.Reader, maxBytes int64) (Image, error) {
	if r == nil {
		return Image{}, ErrEmpty
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Image{}, err
	}
	switch {
	case len(data) == 0:
		return Image{}, ErrEmpty
	case int64(len(data)) > maxBytes:
		return Image{}, ErrTooLarge
	}

	ct := http.DetectContentType(data[:min(len(data), 512)])
	ext, ok := imageExt[ct]
	if !ok {
		return Image{}, ErrUnsupportedType
	}

	return Image{Data: data, ContentType: ct, Ext: ext}, nil
}
