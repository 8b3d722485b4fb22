package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type blockingCloser struct {
	closeCh chan struct{}
	closes  int
}

func (c *blockingCloser) Close() error {
	if c.closes == 0 {
		close(c.closeCh)
	}
	c.closes++
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	t.Run("cancel closes", func(t *testing.T) {
		c := &blockingCloser{closeCh: make(chan struct{})}
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(10*time.Millisecond, cancel)
		aborted := errors.New("aborted")
		err := RunWithContextCloser(ctx, c, func() error {
			<-c.closeCh
			return aborted
		})
		require.Equal(t, aborted, err)
		require.Equal(t, 1, c.closes)
	})
	t.Run("exit closes", func(t *testing.T) {
		c := &blockingCloser{closeCh: make(chan struct{})}
		err := RunWithContextCloser(context.Background(), c, func() error { return nil })
		require.NoError(t, err)
		require.Equal(t, 1, c.closes)
	})
}

func TestRunnerWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	failed := errors.New("failed")
	r := NewRunnerWith(ctx).Go(
		NamedRun("canceled", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(context.Context) error {
			cancel()
			return failed
		}),
	)
	require.Equal(t, failed, r.Wait())
}
