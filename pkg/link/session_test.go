package link

import (
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePort struct {
	readCh    chan byte
	closeCh   chan struct{}
	closeOnce sync.Once

	lock     sync.Mutex
	writes   [][]byte
	flushes  int
	deadline time.Time
	readErr  error
	writeErr error
	stall    bool
}

func newFakePort(input ...byte) *fakePort {
	p := &fakePort{
		readCh:  make(chan byte, 64),
		closeCh: make(chan struct{}),
	}
	p.inject(input...)
	return p
}

func (p *fakePort) inject(bs ...byte) {
	for _, b := range bs {
		p.readCh <- b
	}
}

func (p *fakePort) SetReadDeadline(t time.Time) error {
	p.lock.Lock()
	p.deadline = t
	p.lock.Unlock()
	return nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.lock.Lock()
	deadline, readErr := p.deadline, p.readErr
	p.lock.Unlock()
	if readErr != nil {
		return 0, readErr
	}
	var expired <-chan time.Time
	if !deadline.IsZero() {
		expired = time.After(time.Until(deadline))
	}
	select {
	case c := <-p.readCh:
		b[0] = c
		return 1, nil
	case <-p.closeCh:
		return 0, io.ErrClosedPipe
	case <-expired:
		return 0, ErrPollExpired
	}
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.stall {
		<-p.closeCh
		return 0, io.ErrClosedPipe
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.writes = append(p.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (p *fakePort) Flush() error {
	p.lock.Lock()
	p.flushes++
	p.lock.Unlock()
	return nil
}

func (p *fakePort) Close() error {
	p.closeOnce.Do(func() { close(p.closeCh) })
	return nil
}

type deadlineWritePort struct {
	*fakePort
}

func (p *deadlineWritePort) SetWriteDeadline(time.Time) error { return nil }

func newTestSession(port Port) *Session {
	return NewSession(port, Config{Port: "fake"})
}

func TestWriteModes(t *testing.T) {
	payload := []byte{1, 2, 3, 4}

	t.Run("paced", func(t *testing.T) {
		port := newFakePort()
		s := newTestSession(port)
		start := time.Now()
		require.NoError(t, s.WriteBytes(payload, ModePaced, time.Millisecond))
		require.True(t, time.Since(start) >= 4*time.Millisecond)
		require.Equal(t, [][]byte{{1}, {2}, {3}, {4}}, port.writes)
		require.Equal(t, 4, port.flushes)
	})

	t.Run("block", func(t *testing.T) {
		port := newFakePort()
		s := newTestSession(port)
		require.NoError(t, s.WriteBytes(payload, ModeBlock, time.Hour))
		require.Equal(t, [][]byte{payload}, port.writes)
		require.Equal(t, 1, port.flushes)
	})
}

func TestWriteErrors(t *testing.T) {
	t.Run("device error", func(t *testing.T) {
		port := newFakePort()
		port.writeErr = errors.New("unplugged")
		err := newTestSession(port).WriteBytes([]byte{1, 2}, ModePaced, 0)
		require.True(t, IsDeviceError(err), "unexpected %v", err)
	})

	t.Run("deadline timeout", func(t *testing.T) {
		port := &deadlineWritePort{newFakePort()}
		port.writeErr = ErrPollExpired
		s := NewSession(port, Config{Port: "fake", WriteTimeout: time.Millisecond})
		err := s.WriteBytes([]byte{1}, ModeBlock, 0)
		require.True(t, IsWriteTimeout(err), "unexpected %v", err)
	})

	t.Run("stalled without deadline", func(t *testing.T) {
		port := newFakePort()
		port.stall = true
		s := NewSession(port, Config{Port: "fake", WriteTimeout: 10 * time.Millisecond})
		err := s.WriteBytes([]byte{1, 2, 3}, ModeBlock, 0)
		require.True(t, IsWriteTimeout(err), "unexpected %v", err)
		require.True(t, s.Closed())
	})

	t.Run("closed", func(t *testing.T) {
		s := newTestSession(newFakePort())
		require.NoError(t, s.Close())
		err := s.WriteBytes([]byte{1}, ModeBlock, 0)
		require.True(t, IsDeviceError(err), "unexpected %v", err)
	})
}

func TestReadByte(t *testing.T) {
	port := newFakePort(0x02)
	s := newTestSession(port)

	b, ok, err := s.ReadByte(50 * time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte(0x02), b)

	start := time.Now()
	_, ok, err = s.ReadByte(20 * time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, time.Since(start) >= 20*time.Millisecond)

	port.readErr = errors.New("EIO")
	_, _, err = s.ReadByte(20 * time.Millisecond)
	require.True(t, IsDeviceError(err), "unexpected %v", err)
}

func TestCloseAbortsRead(t *testing.T) {
	s := newTestSession(newFakePort())
	errCh := make(chan error, 1)
	go func() {
		_, _, err := s.ReadByte(time.Minute)
		errCh <- err
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	select {
	case err := <-errCh:
		require.True(t, IsReadTimeout(err), "unexpected %v", err)
	case <-time.After(time.Second):
		t.Fatal("read not aborted")
	}
	_, _, err := s.ReadByte(time.Millisecond)
	require.True(t, IsReadTimeout(err))
}

func TestReadLine(t *testing.T) {
	s := newTestSession(newFakePort([]byte("12\r\n7")...))
	line, ok, err := s.ReadLine(50*time.Millisecond, 16)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "12", line)

	line, ok, err = s.ReadLine(20*time.Millisecond, 16)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "7", line)

	_, ok, err = s.ReadLine(10*time.Millisecond, 16)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDrain(t *testing.T) {
	s := newTestSession(newFakePort(9, 9, 9))
	n, err := s.Drain(5*time.Millisecond, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = s.Drain(5*time.Millisecond, 64)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = s.Drain(5*time.Millisecond, 64)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOpenUnavailable(t *testing.T) {
	testCases := []string{
		"nope://somewhere",
		"/dev/patchlink-does-not-exist",
	}
	for _, port := range testCases {
		t.Run(port, func(t *testing.T) {
			_, err := Open(Config{Port: port, Baud: 115200})
			require.True(t, IsDeviceUnavailable(err), "unexpected %v", err)
		})
	}
}

func TestTCPRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		conn.Write([]byte{buf[0] + buf[3]})
	}()

	err = WithSession(Config{Port: "tcp://" + ln.Addr().String(), WriteTimeout: time.Second}, func(s *Session) error {
		if err := s.WriteBytes([]byte{1, 2, 3, 4}, ModeBlock, 0); err != nil {
			return err
		}
		b, ok, err := s.ReadByte(time.Second)
		require.True(t, ok)
		require.Equal(t, byte(5), b)
		return err
	})
	require.NoError(t, err)
}

func TestParseMode(t *testing.T) {
	var m Mode
	require.NoError(t, m.Set("block"))
	require.Equal(t, ModeBlock, m)
	require.NoError(t, m.Set("Paced"))
	require.Equal(t, ModePaced, m)
	require.Error(t, m.Set("burst"))
	require.Equal(t, "paced", m.String())
}
