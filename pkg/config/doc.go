// Package config holds the openwith settings and their persistence.
//
// Configuration is layered with koanf, lowest priority first:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/openwith/config.toml
//  3. OPENWITH_* environment variables
//  4. per-invocation overrides (the CLI --set flag)
//
// The sixteen boolean settings are also exposed as an ordered table of
// Definitions so front-ends can list and toggle them by key without
// knowing the struct layout.
package config
