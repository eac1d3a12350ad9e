// Package model defines the domain types and value objects for the
// lsb-steg CLI.
//
// This package contains pure data structures with no external dependencies.
// BitDepth and OutputFormat are validated value types; Capacity describes
// how much payload a carrier image can hold at a given bit depth.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
