// Package config handles configuration management for slinky.
// It layers embedded defaults, the user's TOML file and SLINKY_* environment
// variables with koanf, and persists configuration with go-toml.
//
// Environment variables map onto keys by lower-casing the name after the
// SLINKY_ prefix; a double underscore descends into a table:
//
//	SLINKY_STOW_DIR=~/src/dots           -> stow_dir
//	SLINKY_SECRETS__REDACT_IN_PLACE=true -> secrets.redact_in_place
package config
