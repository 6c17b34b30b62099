// Package config loads, normalizes, and validates textp2srt configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a neighbouring .env file, and honours
// environment overrides such as TEXTP2SRT_TIMELINE_DB. Commands obtain the
// timeline store location, filter thresholds, clipboard backend, and output
// limits from a single Config value.
package config
