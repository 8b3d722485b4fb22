package link

import (
	"bufio"
	"net"
	"net/url"
	"time"

	"golang.org/x/net/websocket"
)

const dialTimeout = 5 * time.Second

// ConnPort adapts a net.Conn to Port. Writes are buffered until Flush.
type ConnPort struct {
	net.Conn
	w *bufio.Writer
}

// NewConnPort wraps conn.
func NewConnPort(conn net.Conn) *ConnPort {
	return &ConnPort{Conn: conn, w: bufio.NewWriter(conn)}
}

// Write implements io.Writer.
func (p *ConnPort) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// Flush implements Port.
func (p *ConnPort) Flush() error {
	return p.w.Flush()
}

func dialTCP(u *url.URL, cfg Config) (Port, error) {
	conn, err := net.DialTimeout("tcp", u.Host, dialTimeout)
	if err != nil {
		return nil, err
	}
	return NewConnPort(conn), nil
}

func dialWebsocket(u *url.URL, cfg Config) (Port, error) {
	origin := "http://" + u.Host + "/"
	if u.Scheme == "wss" {
		origin = "https://" + u.Host + "/"
	}
	wsConf, err := websocket.NewConfig(u.String(), origin)
	if err != nil {
		return nil, err
	}
	wsConf.Dialer = &net.Dialer{Timeout: dialTimeout}
	conn, err := websocket.DialConfig(wsConf)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return NewConnPort(conn), nil
}

func init() {
	RegisterDialer("tcp", dialTCP)
	RegisterDialer("ws", dialWebsocket)
	RegisterDialer("wss", dialWebsocket)
}
