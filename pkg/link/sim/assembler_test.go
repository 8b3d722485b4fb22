package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	a := NewAssembler(4)
	for _, b := range []byte{1, 2, 3} {
		r := a.Feed(b)
		require.Nil(t, r.Frame)
		require.Equal(t, FrameReceiving, r.State)
		require.Equal(t, TimerRestart, r.WhatAboutTimer())
	}
	r := a.Feed(4)
	require.Equal(t, []byte{1, 2, 3, 4}, r.Frame)
	require.Equal(t, FrameIdle, r.State)
	require.Equal(t, TimerStop, r.WhatAboutTimer())

	a.Feed(9)
	a.Feed(9)
	r = a.Timeout()
	require.Equal(t, 2, r.Dropped)
	require.Equal(t, FrameIdle, r.State)

	for _, b := range []byte{5, 6, 7} {
		a.Feed(b)
	}
	require.Equal(t, []byte{5, 6, 7, 8}, a.Feed(8).Frame)

	require.Zero(t, a.Timeout().Dropped)
}
