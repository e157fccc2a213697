// Package config reads process settings from flags with environment fallbacks.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       string
	SSHAddr        string
	HostKeyPath    string
}

// Load parses args into a Config. Unset flags fall back to lookup, then to
// the built-in defaults.
func Load(name string, args []string, lookup func(string) string) (Config, error) {
	getenv := func(key, def string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "HTTP listen address")
	origins := fs.String("origins", getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated allowed CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	sshAddr := fs.String("ssh-addr", getenv("CHESS_SSH_ADDR", ":2222"), "SSH listen address")
	hostKey := fs.String("host-key", getenv("CHESS_HOST_KEY", ".ssh/chess_host_key"), "SSH host key path, generated when missing")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if _, err := log.ParseLevel(*level); err != nil {
		return Config{}, fmt.Errorf("log level %q: %w", *level, err)
	}

	return Config{
		Addr:           *addr,
		AllowedOrigins: splitCSV(*origins),
		LogLevel:       *level,
		SSHAddr:        *sshAddr,
		HostKeyPath:    *hostKey,
	}, nil
}

// MustLoad loads from os.Args and the environment, exiting on error.
func MustLoad(name string) Config {
	cfg, err := Load(name, os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

func (c Config) NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// Origins joins AllowedOrigins the way the CORS middleware expects them.
func (c Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ", ")
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
