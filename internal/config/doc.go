// Package config loads, normalizes, and validates the sapling configuration
// file.
//
// Configuration lives in a TOML file, resolved from an explicit --config
// flag, then ~/.config/sapling/config.toml, then ./sapling.toml. All path
// values support ~ expansion and are made absolute during normalization. A
// missing file is not an error; built-in defaults apply.
package config
