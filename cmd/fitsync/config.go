package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/openhealth/fitsync/compress"
)

// fileConfig is the config.toml key mapping.
type fileConfig struct {
	WithingsAccessToken string `toml:"withings_access_token"`
	GarminSessionToken  string `toml:"garmin_session_token"`
	StatePath           string `toml:"state_path"`
	LogDir              string `toml:"log_dir"`
	OutputFIT           string `toml:"output_fit"`
	OutputJSON          string `toml:"output_json"`
	ArchiveCompression  string `toml:"archive_compression"`
	Verbose             bool   `toml:"verbose"`
}

// appConfig is the resolved runtime configuration: file values overlaid on
// defaults, then overridden by CLI flags.
type appConfig struct {
	WithingsAccessToken string
	GarminSessionToken  string
	StatePath           string
	LogDir              string
	OutputFIT           string
	OutputJSON          string
	ArchiveCodec        compress.Type
	Verbose             bool
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".fitsync")
}

func defaultConfig() appConfig {
	dir := defaultConfigDir()

	return appConfig{
		StatePath:    filepath.Join(dir, "state.json"),
		LogDir:       filepath.Join(dir, "logs"),
		ArchiveCodec: compress.TypeNone,
	}
}

// loadConfig reads a TOML config file over the defaults. A missing file at
// the default location is not an error; an explicitly given path must exist.
func loadConfig(path string, explicit bool) (appConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return appConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("withings_access_token") {
		cfg.WithingsAccessToken = strings.TrimSpace(raw.WithingsAccessToken)
	}
	if meta.IsDefined("garmin_session_token") {
		cfg.GarminSessionToken = strings.TrimSpace(raw.GarminSessionToken)
	}
	if meta.IsDefined("state_path") {
		cfg.StatePath = strings.TrimSpace(raw.StatePath)
	}
	if meta.IsDefined("log_dir") {
		cfg.LogDir = strings.TrimSpace(raw.LogDir)
	}
	if meta.IsDefined("output_fit") {
		cfg.OutputFIT = strings.TrimSpace(raw.OutputFIT)
	}
	if meta.IsDefined("output_json") {
		cfg.OutputJSON = strings.TrimSpace(raw.OutputJSON)
	}
	if meta.IsDefined("archive_compression") {
		codec, err := compress.ParseType(strings.TrimSpace(raw.ArchiveCompression))
		if err != nil {
			return appConfig{}, fmt.Errorf("load config: %w", err)
		}
		cfg.ArchiveCodec = codec
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}
