// Package sim simulates the accelerator end of the link.
//
// The simulated device reads fixed-size patch frames, classifies them with
// a pluggable function and answers with one class byte, or a decimal line
// in text mode. It can stay silent or hang up to exercise the host's
// recovery paths.
package sim

import (
	"net"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// Classifier decides the reply for one frame. respond is false for silence.
type Classifier func(frame []byte) (class byte, respond bool)

// MeanClassifier buckets the mean intensity of a frame into classes.
func MeanClassifier(classes int) Classifier {
	return func(frame []byte) (byte, bool) {
		if len(frame) == 0 || classes <= 0 {
			return 0, false
		}
		var sum int
		for _, b := range frame {
			sum += int(b)
		}
		return byte(sum / len(frame) * classes / 256), true
	}
}

// SilentEvery wraps c to stay silent on every n-th frame.
func SilentEvery(n int, c Classifier) Classifier {
	var count int
	return func(frame []byte) (byte, bool) {
		count++
		if n > 0 && count%n == 0 {
			return 0, false
		}
		return c(frame)
	}
}

// Accelerator is a simulated classifier device.
type Accelerator struct {
	FrameSize int
	// FrameGap drops a partial frame after this inter-byte silence.
	FrameGap time.Duration
	Classify Classifier
	// Latency delays each reply.
	Latency time.Duration
	// TextReplies answers with a decimal line instead of a byte.
	TextReplies bool
	// HangupAfter closes the connection after this many frames, 0 never.
	HangupAfter int

	frames int64
}

// NewAccelerator creates an Accelerator for size x size patches.
func NewAccelerator(size, classes int) *Accelerator {
	return &Accelerator{
		FrameSize: size * size,
		FrameGap:  500 * time.Millisecond,
		Classify:  MeanClassifier(classes),
	}
}

// Frames returns the number of complete frames received.
func (a *Accelerator) Frames() int {
	return int(atomic.LoadInt64(&a.frames))
}

// Serve runs the device on conn until it is closed or hangs up.
func (a *Accelerator) Serve(conn net.Conn) error {
	replies, done := make(chan []byte, 16), make(chan struct{})
	go func() {
		a.writeLoop(conn, replies)
		close(done)
	}()
	// pending replies go out before the line drops.
	defer func() {
		close(replies)
		<-done
		conn.Close()
	}()

	asm := NewAssembler(a.FrameSize)
	buf := make([]byte, 1)
	timer := TimerStop
	for {
		deadline := time.Time{}
		if timer == TimerRestart && a.FrameGap > 0 {
			deadline = time.Now().Add(a.FrameGap)
		}
		if err := conn.SetReadDeadline(deadline); err != nil {
			return err
		}
		var r AssembleResult
		n, err := conn.Read(buf)
		switch {
		case n > 0:
			r = asm.Feed(buf[0])
		case err != nil && os.IsTimeout(err):
			r = asm.Timeout()
			glog.Warningf("sim: dropped partial frame of %d bytes", r.Dropped)
		case err != nil:
			return err
		}
		timer = r.WhatAboutTimer()
		if r.Frame == nil {
			continue
		}
		count := atomic.AddInt64(&a.frames, 1)
		if class, ok := a.Classify(r.Frame); ok {
			replies <- a.encode(class)
		}
		if a.HangupAfter > 0 && int(count) >= a.HangupAfter {
			glog.Infof("sim: hanging up after %d frames", count)
			return nil
		}
	}
}

func (a *Accelerator) encode(class byte) []byte {
	if a.TextReplies {
		return []byte(strconv.Itoa(int(class)) + "\n")
	}
	return []byte{class}
}

func (a *Accelerator) writeLoop(conn net.Conn, replies <-chan []byte) {
	for reply := range replies {
		if a.Latency > 0 {
			time.Sleep(a.Latency)
		}
		if _, err := conn.Write(reply); err != nil {
			glog.V(2).Infof("sim: reply dropped: %v", err)
		}
	}
}
