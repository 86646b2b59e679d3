package sink_test

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"printer-relay/pkg/sink"
)

func TestRemoteSinkSendsBinaryMessages(t *testing.T) {
	received := make(chan []byte, 2)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.BinaryMessage {
				received <- msg
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	rs, err := sink.NewRemoteSink(url)
	if err != nil {
		t.Fatalf("NewRemoteSink failed: %s", err)
	}
	defer rs.Close()

	chunks := [][]byte{{0x1b, 0x40}, []byte("total: 12.50\n")}
	for _, chunk := range chunks {
		n, err := rs.Write(chunk)
		if err != nil {
			t.Fatalf("Write failed: %s", err)
		}
		if n != len(chunk) {
			t.Errorf("Write returned %d, expected %d", n, len(chunk))
		}
	}
	if err := rs.Flush(); err != nil {
		t.Errorf("Flush failed: %s", err)
	}

	for _, expected := range chunks {
		select {
		case msg := <-received:
			if !bytes.Equal(msg, expected) {
				t.Errorf("Bridge received %v, expected %v", msg, expected)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Timed out waiting for the bridge to receive a message")
		}
	}
}

func TestRemoteSinkDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %s", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = sink.NewRemoteSink(fmt.Sprintf("ws://127.0.0.1:%d/print", port))
	if err == nil {
		t.Fatal("NewRemoteSink succeeded against a closed port")
	}
	if !errors.Is(err, sink.ErrConnection) {
		t.Errorf("Expected ErrConnection, got: %s", err)
	}
}
