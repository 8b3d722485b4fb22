package sim

import (
	"context"
	"net"

	"github.com/golang/glog"
)

// Server exposes an Accelerator on a listener, one host at a time.
type Server struct {
	Listener    net.Listener
	Accelerator *Accelerator
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Listener.Close()
	}()
	for {
		conn, err := s.Listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		glog.Infof("sim: host connected from %s", conn.RemoteAddr())
		err = s.Accelerator.Serve(conn)
		glog.Infof("sim: host disconnected: %v", err)
	}
}
