package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/patchlink/pkg/classify"
	"github.com/robotalks/patchlink/pkg/link"
	_ "github.com/robotalks/patchlink/pkg/link/sim"
	"github.com/robotalks/patchlink/pkg/patch"
	"github.com/robotalks/patchlink/pkg/report"
)

func writeImage(t *testing.T, w, h int, fill uint8) string {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill})
		}
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func newJob(t *testing.T, fill uint8) *Job {
	return &Job{
		Image: writeImage(t, 64, 64, fill),
		Patch: patch.Config{Width: 64, Height: 64},
		Classify: classify.Config{
			PatchSize:   32,
			Mode:        link.ModeBlock,
			ReadTimeout: time.Second,
			DrainStale:  true,
		},
		Labels: report.Labels{"dark", "mid", "bright"},
	}
}

func TestJobRun(t *testing.T) {
	job := newJob(t, 200)
	var out bytes.Buffer
	job.Out = &out

	err := link.WithSession(link.Config{Port: "sim://?size=32&classes=3"}, func(s *link.Session) error {
		result, err := job.Run(context.Background(), s)
		require.NoError(t, err)
		require.Len(t, result.Outcomes, 4)
		require.Equal(t, "4/4 patches: 4 classified, 0 out of range, 0 absent", result.Summary(nil))
		return nil
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"Patch (0,0) → bright",
		"Patch (32,0) → bright",
		"Patch (0,32) → bright",
		"Patch (32,32) → bright",
	}, lines)
}

func TestJobProtocolClasses(t *testing.T) {
	job := newJob(t, 0)
	require.Equal(t, 3, job.Protocol().NumClasses)
	job.Classify.NumClasses = 20
	require.Equal(t, 20, job.Protocol().NumClasses)
}

func TestJobCancel(t *testing.T) {
	job := newJob(t, 0)
	s, err := link.Open(link.Config{Port: "sim://?size=32&silent=1"})
	require.NoError(t, err)
	job.Classify.ReadTimeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	result, err := job.Run(ctx, s)
	require.Error(t, err)
	require.True(t, link.IsReadTimeout(err), "unexpected %v", err)
	require.Empty(t, result.Outcomes)
	require.True(t, s.Closed())
}

func TestJobMissingImage(t *testing.T) {
	job := newJob(t, 0)
	job.Image += ".missing"
	_, err := job.Run(context.Background(), nil)
	require.ErrorIs(t, err, patch.ErrImageNotFound)
}
