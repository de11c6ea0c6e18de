package server

import (
	"fmt"
	"time"
)

// Config holds the snapshot stream settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	MaxClients int    `yaml:"max_clients" json:"max_clients"`

	// SendBuffer is the number of frames queued per client. A client whose
	// queue is full is disconnected.
	SendBuffer   int           `yaml:"send_buffer" json:"send_buffer"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	PingInterval time.Duration `yaml:"ping_interval" json:"ping_interval"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		ListenAddr:   "127.0.0.1:8080",
		MaxClients:   256,
		SendBuffer:   64,
		WriteTimeout: 5 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case c.MaxClients < 1:
		return fmt.Errorf("%w: max clients %d", ErrInvalidConfig, c.MaxClients)
	case c.SendBuffer < 1:
		return fmt.Errorf("%w: send buffer %d", ErrInvalidConfig, c.SendBuffer)
	case c.WriteTimeout <= 0 || c.PingInterval <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}
