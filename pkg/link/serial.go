package link

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// serialPollInterval is the shortest read timeout a tty supports (VTIME
// has decisecond resolution).
const serialPollInterval = 100 * time.Millisecond

type serialPort struct {
	port *serial.Port
}

func openSerial(cfg Config) (Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: serialPollInterval,
	})
	if err != nil {
		return nil, err
	}
	return &serialPort{port: port}, nil
}

// Read implements io.Reader.
func (p *serialPort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	// a zero-length read is how the tty reports VTIME expiry.
	if n == 0 && (err == nil || err == io.EOF) {
		return 0, ErrPollExpired
	}
	return n, err
}

// Write implements io.Writer.
func (p *serialPort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close implements io.Closer.
func (p *serialPort) Close() error {
	return p.port.Close()
}

// Flush implements Port. Writes to a tty are not buffered in user space,
// and serial.Port.Flush discards pending data instead of sending it.
func (p *serialPort) Flush() error {
	return nil
}
