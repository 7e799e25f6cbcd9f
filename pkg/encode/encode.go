// Package encode writes finished raster buffers to their container
// formats. PNG is the service's wire format; BMP exists for local CLI
// output.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Encoder converts a finished raster buffer into a byte stream.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, img image.Image) error
}

// PNG encodes image/png.
type PNG struct{}

func (PNG) ContentType() string { return "image/png" }

func (PNG) Encode(w io.Writer, img image.Image) error { return png.Encode(w, img) }

// BMP encodes image/bmp.
type BMP struct{}

func (BMP) ContentType() string { return "image/bmp" }

func (BMP) Encode(w io.Writer, img image.Image) error { return bmp.Encode(w, img) }

// ForExtension returns the encoder for a file extension.
func ForExtension(ext string) (Encoder, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return PNG{}, nil
	case ".bmp":
		return BMP{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use .png or .bmp", ext)
	}
}

// WriteFile writes img to path, inferring the format from the extension.
func WriteFile(path string, img image.Image) error {
	enc, err := ForExtension(filepath.Ext(path))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
