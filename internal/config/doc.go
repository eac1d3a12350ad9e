// Package config resolves lsb-steg settings from flags, environment
// variables and an optional config file.
//
// Precedence, highest first:
//
//	command-line flag > LSBSTEG_* environment variable > config file > default
//
// Config files may be YAML or JSON. JSON files are allowed to carry
// comments and trailing commas (JSONC); github.com/tidwall/jsonc strips
// them before viper parses the document.
package config
