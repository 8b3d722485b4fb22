package patch

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Default target resolution images are normalized to before extraction.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Load decodes an image file.
func Load(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrImageNotFound, path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}
	return img, nil
}

// Normalize converts img to grayscale and resizes it to width x height.
func Normalize(img image.Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "target %dx%d", width, height)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty source image")
	}
	var nrgba *image.NRGBA
	if b.Dx() == width && b.Dy() == height {
		nrgba = imaging.Grayscale(img)
	} else {
		nrgba = imaging.Grayscale(imaging.Resize(img, width, height, imaging.Linear))
	}
	out := &Image{width: width, height: height, pix: make([]byte, width*height)}
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < width; x++ {
			// grayscale: R == G == B
			out.pix[y*width+x] = row[x*4]
		}
	}
	return out, nil
}

// LoadNormalized loads path and normalizes it to width x height.
func LoadNormalized(path string, width, height int) (*Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	glog.V(2).Infof("loaded %s: %dx%d -> %dx%d", path, b.Dx(), b.Dy(), width, height)
	return Normalize(img, width, height)
}
