package thumbnail

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	return img
}

func decodeJPEG(t *testing.T, b []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func TestGenerate_TransparentBecomesWhite(t *testing.T) {
	source := encodePNG(t, solidImage(10, 10, color.NRGBA{R: 0, G: 0, B: 0, A: 0}))

	b, err := Generate(source)
	require.NoError(t, err)

	img := decodeJPEG(t, b)
	r, g, bl, _ := img.At(5, 5).RGBA()

	assert.InDelta(t, 0xffff, r, 0x0300)
	assert.InDelta(t, 0xffff, g, 0x0300)
	assert.InDelta(t, 0xffff, bl, 0x0300)
}

func TestGenerate_BoundsLongestSide(t *testing.T) {
	tcs := []struct {
		name       string
		width      int
		height     int
		wantWidth  int
		wantHeight int
	}{
		{name: "Landscape", width: 1600, height: 1200, wantWidth: 800, wantHeight: 600},
		{name: "Portrait", width: 1000, height: 2000, wantWidth: 400, wantHeight: 800},
		{name: "SmallIsNotUpscaled", width: 300, height: 200, wantWidth: 300, wantHeight: 200},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			source := encodePNG(t, solidImage(tc.width, tc.height, color.NRGBA{R: 200, G: 10, B: 10, A: 255}))

			b, err := Generate(source)
			require.NoError(t, err)

			bounds := decodeJPEG(t, b).Bounds()
			assert.Equal(t, tc.wantWidth, bounds.Dx())
			assert.Equal(t, tc.wantHeight, bounds.Dy())
		})
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	source := encodePNG(t, solidImage(900, 450, color.NRGBA{R: 10, G: 120, B: 200, A: 128}))

	first, err := Generate(source)
	require.NoError(t, err)

	second, err := Generate(source)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_CorruptInput(t *testing.T) {
	b, err := Generate([]byte("definitely not an image"))

	assert.Error(t, err)
	assert.Nil(t, b)
}

// pngHeader is a PNG signature and IHDR chunk declaring an RGB image of
// the given size, with no pixel data behind it.
func pngHeader(width, height uint32) []byte {
	var buf bytes.Buffer

	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, width)
	chunk = binary.BigEndian.AppendUint32(chunk, height)
	chunk = append(chunk, 8, 2, 0, 0, 0)

	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))

	return buf.Bytes()
}

func TestGenerate_RefusesOversizedSource(t *testing.T) {
	_, err := Generate(pngHeader(30000, 30000))
	assert.ErrorIs(t, err, ErrSourceTooLarge)
}
