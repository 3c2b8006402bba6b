package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds listener settings read from the environment.
type Config struct {
	Addr            string        `env:"EMAILSIG_HTTP_ADDR" envDefault:"127.0.0.1:8787"`
	ReadTimeout     time.Duration `env:"EMAILSIG_HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"EMAILSIG_HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"EMAILSIG_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"EMAILSIG_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	AllowedOrigins  []string      `env:"EMAILSIG_ALLOWED_ORIGINS" envSeparator:","`
	LiveDebounce    time.Duration `env:"EMAILSIG_LIVE_DEBOUNCE" envDefault:"150ms"`
	MaxBodyBytes    int64         `env:"EMAILSIG_MAX_BODY_BYTES" envDefault:"1048576"`
}

var ErrParsingConfig = errors.New("server: parse config")

// LoadConfig reads Config from the process environment after loading an
// optional .env file from the working directory.
func LoadConfig() (Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// ConfigFrom reads Config from the given variables only.
func ConfigFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// ReadEnvFile parses a dotenv file into a variable map suitable for
// ConfigFrom.
func ReadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("server: read env file %s: %w", path, err)
	}
	return values, nil
}
