package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxDimension = 800
	JPEGQuality  = 85

	// MaxSourcePixels bounds the canvas allocated while flattening.
	MaxSourcePixels = 89_478_485
)

var (
	ErrSourceTooLarge = fmt.Errorf("source image is too large to thumbnail")
)

/*
Generate turns an encoded image into a JPEG no larger than MaxDimension
on either side. Transparent and paletted images are flattened onto a
white canvas first. Images already within bounds keep their size.
Sources over MaxSourcePixels are refused before any pixels are decoded.
*/
func Generate(source []byte) ([]byte, error) {
	var (
		err    error
		config image.Config
		img    image.Image
		buf    bytes.Buffer
	)

	if config, _, err = image.DecodeConfig(bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("error reading image header: %w", err)
	}

	if int64(config.Width)*int64(config.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSourceTooLarge, config.Width, config.Height)
	}

	if img, _, err = image.Decode(bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	flattened := flatten(img)
	resized := resize.Thumbnail(MaxDimension, MaxDimension, flattened, resize.Lanczos3)

	if err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("error encoding thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

func flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)

	return canvas
}
