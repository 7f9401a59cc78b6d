package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/yaml.v3"
)

const configFileName = ".clarice.yaml"

// Config holds the user-level settings read from ~/.clarice.yaml. Every
// field is optional; zero values fall back to the defaults below.
type Config struct {
	// HistoryFile is the REPL history path. Defaults to ~/.clarice_history.
	HistoryFile string `yaml:"history_file"`
	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `yaml:"log_level"`
	// LogFile, when set, receives a JSON copy of every log record.
	LogFile string `yaml:"log_file"`
}

func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		HistoryFile: filepath.Join(home, ".clarice_history"),
		LogLevel:    "warn",
	}
}

// loadConfig reads the config file at path, or ~/.clarice.yaml when path is
// empty. A missing file is not an error; a malformed one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configFileName)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaultConfig().HistoryFile
	}
	return cfg, nil
}

// newLogger builds the CLI logger: a text handler on stderr, fanned out to a
// JSON file handler when log_file is configured.
func newLogger(cfg Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.LogLevel)
	stderrH := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	if cfg.LogFile == "" {
		return slog.New(stderrH), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	fileH := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(stderrH, fileH))
	return logger, func() { _ = f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
