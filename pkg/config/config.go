package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUSBTimeoutMS bounds one bulk write when the config omits it.
	DefaultUSBTimeoutMS = 5000
	// DefaultNetworkPort is the raw printing port most LAN printers use.
	DefaultNetworkPort = 9100
)

type Config struct {
	Sink SinkConfig `yaml:"sink"`
}

type SinkConfig struct {
	Type    string         `yaml:"type"` // "usb", "network", "file", "console", "remote"
	USB     *USBConfig     `yaml:"usb,omitempty"`
	Network *NetworkConfig `yaml:"network,omitempty"`
	File    *FileConfig    `yaml:"file,omitempty"`
	Remote  *RemoteConfig  `yaml:"remote,omitempty"`
}

type USBConfig struct {
	VendorID    uint16 `yaml:"vendor_id"`
	ProductID   uint16 `yaml:"product_id"`
	Interface   int    `yaml:"interface"`
	EndpointIn  int    `yaml:"endpoint_in"`
	EndpointOut int    `yaml:"endpoint_out"`
	TimeoutMS   int    `yaml:"timeout_ms"`
}

type NetworkConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type RemoteConfig struct {
	URL string `yaml:"url"`
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Sink.validate(); err != nil {
		return nil, err
	}
	cfg.Sink.applyDefaults()
	return &cfg, nil
}

func (sc *SinkConfig) validate() error {
	switch sc.Type {
	case "usb":
		if sc.USB == nil {
			return fmt.Errorf("usb sink requires a usb section")
		}
		if sc.USB.EndpointOut == 0 {
			return fmt.Errorf("usb sink requires a nonzero endpoint_out")
		}
	case "network":
		if sc.Network == nil {
			return fmt.Errorf("network sink requires a network section")
		}
		if sc.Network.Host == "" {
			return fmt.Errorf("network sink requires a host")
		}
	case "file":
		if sc.File == nil || sc.File.Path == "" {
			return fmt.Errorf("file sink requires a path")
		}
	case "remote":
		if sc.Remote == nil || sc.Remote.URL == "" {
			return fmt.Errorf("remote sink requires a url")
		}
	case "console":
	case "":
		return fmt.Errorf("sink type missing")
	default:
		return fmt.Errorf("unknown sink type: %s", sc.Type)
	}
	return nil
}

func (sc *SinkConfig) applyDefaults() {
	if sc.USB != nil && sc.USB.TimeoutMS == 0 {
		sc.USB.TimeoutMS = DefaultUSBTimeoutMS
	}
	if sc.Network != nil && sc.Network.Port == 0 {
		sc.Network.Port = DefaultNetworkPort
	}
}
