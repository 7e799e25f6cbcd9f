package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestForExtension(t *testing.T) {
	enc, err := ForExtension(".png")
	require.NoError(t, err)
	require.Equal(t, "image/png", enc.ContentType())

	enc, err = ForExtension(".BMP") // case-insensitive
	require.NoError(t, err)
	require.Equal(t, "image/bmp", enc.ContentType())

	_, err = ForExtension(".webp")
	require.Error(t, err)
	_, err = ForExtension("")
	require.Error(t, err)
}

func TestEncodersProduceDecodableOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG{}.Encode(&buf, testImage()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dx())

	buf.Reset()
	require.NoError(t, BMP{}.Encode(&buf, testImage()))
	img, err = bmp.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dx())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WriteFile(path, testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dy())

	require.Error(t, WriteFile(filepath.Join(t.TempDir(), "out.gif"), testImage()))
}
