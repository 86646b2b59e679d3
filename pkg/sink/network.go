package sink

import (
	"fmt"
	"net"
	"strconv"
)

// NetworkSink streams printer data to a raw TCP port, the usual transport
// for LAN printers listening on 9100.
type NetworkSink struct {
	host string
	port int
	conn net.Conn
}

// NewNetworkSink connects to host:port with blocking TCP semantics.
// Resolution failures and refused connections surface as ErrConnection.
func NewNetworkSink(host string, port int) (*NetworkSink, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w: %w", addr, ErrConnection, err)
	}
	return &NetworkSink{host: host, port: port, conn: conn}, nil
}

// Write hands p to the socket. net.Conn only reports a short count
// together with an error, so a nil return means the whole buffer was
// accepted by the kernel.
func (s *NetworkSink) Write(p []byte) (int, error) {
	n, err := s.conn.Write(p)
	if err != nil {
		return n, fmt.Errorf("write %s:%d: %w: %w", s.host, s.port, ErrConnection, err)
	}
	return n, nil
}

// Flush is a no-op: the TCP stream has no user-space buffer at this layer.
func (s *NetworkSink) Flush() error {
	return nil
}

func (s *NetworkSink) Close() error {
	return s.conn.Close()
}
