package client

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
)

// sampleSize is the square the image is scaled to before averaging.
const sampleSize = 100

// RGB is a mean colour truncated to whole channel values.
type RGB struct {
	R, G, B int
}

// LoadImage decodes a JPEG or PNG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeImage(f)
}

func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return img, nil
}

// AverageRGB scales img to 100x100 and returns the per-channel mean, truncated.
// Alpha is dropped before scaling: transparent pixels count with their stored colour.
func AverageRGB(img image.Image) RGB {
	resized := resize.Resize(sampleSize, sampleSize, dropAlpha(img), resize.Bicubic)

	b := resized.Bounds()
	var sr, sg, sb uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(resized.At(x, y))
			sr += uint64(r)
			sg += uint64(g)
			sb += uint64(bl)
		}
	}
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return RGB{}
	}
	return RGB{R: int(sr / n), G: int(sg / n), B: int(sb / n)}
}

// dropAlpha returns an opaque copy holding the straight (non-premultiplied) colour of each pixel.
func dropAlpha(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return out
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
