package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/server"
)

// Config is the daemon configuration file.
type Config struct {
	LogLevel  string        `yaml:"log_level"`
	Scene     string        `yaml:"scene"`
	TickRate  int           `yaml:"tick_rate"`
	HotReload bool          `yaml:"hot_reload"`
	Server    server.Config `yaml:"server"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		TickRate:  60,
		HotReload: true,
		Server:    server.DefaultConfig(),
	}
}

// loadConfig decodes path over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err = yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Scene == "" {
		return errors.New("no scene file given")
	}
	if c.TickRate < 1 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	return c.Server.Validate()
}
