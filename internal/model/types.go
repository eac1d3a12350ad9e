// Package model defines the domain types for the lsb-steg CLI.
//
// These types are shared between the codec (internal/stego), the file
// layer (internal/imageio), configuration and the cobra commands.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Delimiter terminates every embedded secret. The decoder reads channels
// until the recovered text ends with it.
const Delimiter = "#####"

// BitDepth is the number of least-significant bits of each colour channel
// that carry secret data. Higher depths hold more data at the cost of
// visible noise in the carrier image.
type BitDepth int

const (
	// MinBitDepth is the smallest usable depth: one bit per channel.
	MinBitDepth BitDepth = 1

	// MaxBitDepth replaces the whole channel value.
	MaxBitDepth BitDepth = 8

	// DefaultBitDepth is used when neither a flag, environment variable
	// nor config file sets a depth.
	DefaultBitDepth BitDepth = 1
)

// String returns the decimal representation of the depth.
func (d BitDepth) String() string {
	return strconv.Itoa(int(d))
}

// IsValid reports whether the depth lies in [MinBitDepth, MaxBitDepth].
func (d BitDepth) IsValid() bool {
	return d >= MinBitDepth && d <= MaxBitDepth
}

// Validate returns a descriptive error when the depth is out of range.
func (d BitDepth) Validate() error {
	if !d.IsValid() {
		return fmt.Errorf("bits must be between %d and %d, got %d", MinBitDepth, MaxBitDepth, int(d))
	}
	return nil
}

// OutputFormat selects how command results are rendered on stdout.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"

	// OutputJSON is indented JSON for machine consumption.
	OutputJSON OutputFormat = "json"

	// OutputYAML is a YAML document.
	OutputYAML OutputFormat = "yaml"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat value is one of the
// predefined formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a string to an OutputFormat. Matching is
// case-insensitive and "yml" is accepted as an alias for yaml.
func ParseOutputFormat(s string) (OutputFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "yml" {
		normalized = string(OutputYAML)
	}
	format := OutputFormat(normalized)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// Capacity describes how much payload a carrier image can hold.
//
// Every pixel contributes three channels (R, G, B); alpha is never used.
// MaxSecretBytes already accounts for the delimiter appended on encode.
type Capacity struct {
	Width          int      `json:"width" yaml:"width"`
	Height         int      `json:"height" yaml:"height"`
	Channels       int      `json:"channels" yaml:"channels"`
	BitDepth       BitDepth `json:"bitDepth" yaml:"bitDepth"`
	Bits           int      `json:"bits" yaml:"bits"`
	Bytes          int      `json:"bytes" yaml:"bytes"`
	MaxSecretBytes int      `json:"maxSecretBytes" yaml:"maxSecretBytes"`
}

// NewCapacity computes the capacity of a width x height image at depth d.
// The depth is assumed to be valid.
func NewCapacity(width, height int, d BitDepth) Capacity {
	channels := width * height * 3
	bits := channels * int(d)
	bytes := bits / 8
	maxSecret := bytes - len(Delimiter)
	if maxSecret < 0 {
		maxSecret = 0
	}
	return Capacity{
		Width:          width,
		Height:         height,
		Channels:       channels,
		BitDepth:       d,
		Bits:           bits,
		Bytes:          bytes,
		MaxSecretBytes: maxSecret,
	}
}

// ExitCode defines the process exit codes of lsb-steg.
// These codes allow scripts to programmatically determine the outcome
// of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInputNotFound indicates an input image or secret file is missing.
	ExitInputNotFound ExitCode = 2

	// ExitUnsupportedImage indicates the input could not be decoded as an image.
	ExitUnsupportedImage ExitCode = 3

	// ExitSecretTooLarge indicates the secret does not fit in the carrier
	// at the requested bit depth.
	ExitSecretTooLarge ExitCode = 4

	// ExitSecretNotFound indicates no delimiter-terminated secret was found,
	// usually because a different bit depth was used for encoding.
	ExitSecretNotFound ExitCode = 5

	// ExitInvalidArgument indicates a flag, argument or config value is invalid.
	ExitInvalidArgument ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
