package sink_test

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"printer-relay/pkg/sink"
)

func TestNetworkSinkRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %s", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	ns, err := sink.NewNetworkSink("127.0.0.1", port)
	if err != nil {
		t.Fatalf("NewNetworkSink failed: %s", err)
	}

	payload := []byte{0x1b, 0x40, 'h', 'i'}
	n, err := ns.Write(payload)
	if err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	if n != len(payload) {
		t.Errorf("Write returned %d, expected %d", n, len(payload))
	}
	if err := ns.Flush(); err != nil {
		t.Errorf("Flush failed: %s", err)
	}
	if err := ns.Close(); err != nil {
		t.Errorf("Close failed: %s", err)
	}

	select {
	case data := <-received:
		if !bytes.Equal(data, payload) {
			t.Errorf("Server received %v, expected %v", data, payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the server to receive data")
	}
}

func TestNetworkSinkRefusedConnection(t *testing.T) {
	// Grab a free port, then close the listener so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %s", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	ns, err := sink.NewNetworkSink("127.0.0.1", port)
	if err == nil {
		ns.Close()
		t.Fatal("NewNetworkSink succeeded against a closed port")
	}
	if !errors.Is(err, sink.ErrConnection) {
		t.Errorf("Expected ErrConnection, got: %s", err)
	}
}
