// Package config handles loading and parsing of the process's own
// configuration from YAML files and environment variables. It defines the
// application configuration structure including server settings, the runtime
// document source, fallback values, upstream probing, and logging.
//
// This is distinct from the runtime configuration document the loaders fetch
// at startup: this package configures where that document lives and what to
// substitute when it is absent.
package config
