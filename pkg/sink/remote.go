package sink

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	remoteWriteTimeout = 10 * time.Second
	remoteCloseTimeout = time.Second
)

// RemoteSink forwards buffers to a websocket print bridge, one binary
// message per write. Useful when the printer hangs off another host that
// runs a bridge daemon in front of its USB port.
type RemoteSink struct {
	url  string
	conn *websocket.Conn
}

// NewRemoteSink dials the bridge at url (ws:// or wss://).
func NewRemoteSink(url string) (*RemoteSink, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w: %w", url, ErrConnection, err)
	}
	return &RemoteSink{url: url, conn: conn}, nil
}

func (s *RemoteSink) Write(p []byte) (int, error) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(remoteWriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, fmt.Errorf("send to %s: %w: %w", s.url, ErrConnection, err)
	}
	return len(p), nil
}

// Flush is a no-op: every Write is already a complete message.
func (s *RemoteSink) Flush() error {
	return nil
}

// Close tells the bridge we are done before dropping the connection, so it
// can finish feeding the printer.
func (s *RemoteSink) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(remoteCloseTimeout))
	return s.conn.Close()
}
