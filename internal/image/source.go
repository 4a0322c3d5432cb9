package image

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/vibrant/internal/colour"
)

// ErrNilImage is returned when a Source has no image.
var ErrNilImage = errors.New("image is nil")

// Source yields the pixels of a decoded image.
type Source struct {
	img image.Image
}

// NewSource wraps a decoded image.
func NewSource(img image.Image) *Source {
	return &Source{img: img}
}

// Pixels returns the image's pixels in row-major order with straight
// (non-premultiplied) alpha. A positive maxDimension downsizes the image so
// its longest side is at most maxDimension.
func (s *Source) Pixels(maxDimension int) ([]colour.Pixel, error) {
	if s == nil || s.img == nil {
		return nil, ErrNilImage
	}

	nrgba := toNRGBA(Scale(s.img, maxDimension))
	b := nrgba.Bounds()
	pixels := make([]colour.Pixel, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			pixels = append(pixels, colour.Pixel{R: row[x], G: row[x+1], B: row[x+2], A: row[x+3]})
		}
	}
	return pixels, nil
}

// ScaledSize returns the dimensions after fitting w x h into a
// maxDimension square. Aspect ratio is preserved and images are never
// enlarged. A non-positive maxDimension leaves the size unchanged.
func ScaledSize(w, h, maxDimension int) (int, int) {
	longest := max(w, h)
	if maxDimension <= 0 || longest <= maxDimension {
		return w, h
	}
	ratio := float64(maxDimension) / float64(longest)
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return nw, nh
}

// Scale downsizes img with bilinear interpolation so that its longest side
// is at most maxDimension. The original is returned when no resize is needed.
func Scale(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), maxDimension)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// toNRGBA returns img as an NRGBA image anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
