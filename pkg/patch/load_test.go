package patch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadNormalized(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 128, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	img, err := LoadNormalized(writePNG(t, src), 64, 48)
	require.NoError(t, err)
	require.Equal(t, 64, img.Width())
	require.Equal(t, 48, img.Height())
	require.InDelta(t, 200, int(img.At(10, 10)), 2)

	patches, err := Extract(img, 16)
	require.NoError(t, err)
	require.Len(t, patches, 12)
}

func TestFromGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 8, 8))
	g.SetGray(3, 2, color.Gray{Y: 77})
	img := FromGray(g.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray))
	require.Equal(t, 4, img.Width())
	require.Equal(t, byte(77), img.At(1, 0))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, ErrImageNotFound)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrDecode)
}

func TestConfigLoadPatches(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 100, 70))
	cfg := &Config{Width: 96, Height: 64, Size: 32}
	patches, err := cfg.LoadPatches(writePNG(t, src))
	require.NoError(t, err)
	require.Len(t, patches, 6)
	require.Equal(t, 64, patches[5].X)
	require.Equal(t, 32, patches[5].Y)
}
