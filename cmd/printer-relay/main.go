package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"printer-relay/pkg/config"
	"printer-relay/pkg/relay"
	"printer-relay/pkg/sink"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	inputPath := flag.String("input", "-", "Raw printer data to send; - reads stdin")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// One id per invocation, so log lines from overlapping jobs on the
	// same host can be told apart.
	jobID := uuid.New().String()

	dest, err := buildSink(cfg.Sink)
	if err != nil {
		log.Fatalf("[%s] Failed to open %s sink: %v", jobID, cfg.Sink.Type, err)
	}
	defer dest.Close()

	in, err := openInput(*inputPath)
	if err != nil {
		log.Fatalf("[%s] Failed to open input: %v", jobID, err)
	}
	defer in.Close()

	start := time.Now()
	n, err := relay.Run(in, dest)
	if err != nil {
		log.Fatalf("[%s] Relay failed after %d bytes: %v", jobID, n, err)
	}
	if err := dest.Flush(); err != nil {
		log.Fatalf("[%s] Flush failed: %v", jobID, err)
	}
	log.Printf("[%s] Sent %d bytes to %s sink in %s", jobID, n, cfg.Sink.Type, time.Since(start).Round(time.Millisecond))
}

func buildSink(cfg config.SinkConfig) (sink.Sink, error) {
	switch cfg.Type {
	case "usb":
		u := cfg.USB
		return sink.NewUSBSink(u.VendorID, u.ProductID, u.Interface, u.EndpointIn, u.EndpointOut,
			time.Duration(u.TimeoutMS)*time.Millisecond)
	case "network":
		return sink.NewNetworkSink(cfg.Network.Host, cfg.Network.Port)
	case "file":
		return sink.NewFileSink(cfg.File.Path)
	case "console":
		return sink.NewConsoleSink(), nil
	case "remote":
		return sink.NewRemoteSink(cfg.Remote.URL)
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Type)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
