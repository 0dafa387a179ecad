// Package config loads editor configuration from a TOML file with
// environment-variable overrides, and can watch the file for changes so
// running sessions pick up edits without a restart.
//
// Resolution order, later wins: built-in defaults, the TOML file, then
// QUILL_-prefixed environment variables. A missing file is not an error;
// the defaults stand.
package config
