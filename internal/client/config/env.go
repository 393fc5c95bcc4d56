package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvServerURL      = "ET_SERVER_URL"
	EnvRequestTimeout = "ET_REQUEST_TIMEOUT"
)

func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
