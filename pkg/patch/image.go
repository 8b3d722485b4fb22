package patch

import (
	"image"

	"github.com/pkg/errors"
)

// Image is a grayscale image with one intensity byte per pixel.
type Image struct {
	width  int
	height int
	pix    []byte
}

// NewImage creates an Image from row-major pixels. pix is copied.
func NewImage(width, height int, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d with %d pixels", width, height, len(pix))
	}
	img := &Image{width: width, height: height, pix: make([]byte, len(pix))}
	copy(img.pix, pix)
	return img, nil
}

// FromGray converts an *image.Gray, honoring its bounds and stride.
func FromGray(g *image.Gray) *Image {
	b := g.Bounds()
	img := &Image{width: b.Dx(), height: b.Dy(), pix: make([]byte, b.Dx()*b.Dy())}
	for y := 0; y < img.height; y++ {
		row := g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(img.pix[y*img.width:(y+1)*img.width], row[:img.width])
	}
	return img
}

// Width returns the width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the height in pixels.
func (m *Image) Height() int { return m.height }

// At returns the intensity at (x, y).
func (m *Image) At(x, y int) byte {
	return m.pix[y*m.width+x]
}

func (m *Image) empty() bool {
	return m == nil || m.width <= 0 || m.height <= 0 || len(m.pix) != m.width*m.height
}
