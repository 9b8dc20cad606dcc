package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration. It makes the
// binary self-contained; an external config file or environment variables
// override it.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
