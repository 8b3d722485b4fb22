package patch

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultSize is the default patch side length.
const DefaultSize = 32

// Patch is a Size x Size window of an Image with its top-left origin.
type Patch struct {
	X    int
	Y    int
	Size int
	// Data holds Size*Size intensities in row-major order.
	Data []byte
}

// String implements fmt.Stringer.
func (p Patch) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Extract splits img into size x size patches in row-major order.
// Windows extending past the right or bottom edge are skipped.
func Extract(img *Image, size int) ([]Patch, error) {
	if img.empty() {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty image")
	}
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "patch size %d", size)
	}
	cols, rows := img.width/size, img.height/size
	patches := make([]Patch, 0, cols*rows)
	for y := 0; y+size <= img.height; y += size {
		for x := 0; x+size <= img.width; x += size {
			patches = append(patches, img.window(x, y, size))
		}
	}
	return patches, nil
}

func (m *Image) window(x, y, size int) Patch {
	p := Patch{X: x, Y: y, Size: size, Data: make([]byte, size*size)}
	for row := 0; row < size; row++ {
		off := (y+row)*m.width + x
		copy(p.Data[row*size:(row+1)*size], m.pix[off:off+size])
	}
	return p
}
