package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	EnvHTTPAddr      = "ET_HTTP_ADDR"
	EnvDatabaseDSN   = "ET_DATABASE_DSN"
	EnvSecretKey     = "ET_SECRET_KEY"
	EnvTokenValidity = "ET_TOKEN_VALIDITY"
	EnvBcryptCost    = "ET_BCRYPT_COST"
	EnvLogLevel      = "ET_LOG_LEVEL"
	EnvLogFormat     = "ET_LOG_FORMAT"
	EnvTraceStdout   = "ET_TRACE_STDOUT"
	EnvCORSOrigins   = "ET_CORS_ORIGINS"
)

// loadEnvFile exports variables from path into the process environment.
// Variables already set win over the file. A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// parseEnv overlays ET_* variables onto config. Unset variables keep
// the current value.
func parseEnv(config *Config) error {
	if v, ok := os.LookupEnv(EnvHTTPAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvTokenValidity); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenValidity, err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		config.BcryptCost = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		config.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvTraceStdout); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTraceStdout, err)
		}
		config.TraceStdout = b
	}
	if v, ok := os.LookupEnv(EnvCORSOrigins); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
