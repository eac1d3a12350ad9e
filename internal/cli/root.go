// Package cli implements the cobra-based CLI commands for lsb-steg.
//
// Each subcommand (encode, decode, capacity) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands, resolves the global settings and maps
// errors to exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/lsb-steg/internal/config"
	"github.com/shinji-kodama/lsb-steg/internal/logging"
	"github.com/shinji-kodama/lsb-steg/internal/model"
	"github.com/shinji-kodama/lsb-steg/internal/stego"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// settingsKey is the context key under which resolved settings are stored.
type settingsKey struct{}

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text and the global flags, and resolves config.Settings before any
// subcommand runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lsb-steg",
		Short: "Hide text secrets in images using least-significant-bit steganography",
		Long: `lsb-steg hides a text secret inside the least-significant bits of an
image's colour channels and recovers it again.

The same --bits value must be used for encoding and decoding. More bits
per channel hold a larger secret but make the changes easier to spot.
Encoded images are always written as PNG, since lossy formats would
destroy the hidden data.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors (text, JSON or YAML).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand: it merges flags,
		// environment and config file, then attaches the settings and a
		// logger to the command context.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			// Machine-readable output modes get machine-readable logs.
			logger := logging.New(cmd.ErrOrStderr(), settings.Verbose)
			if settings.Output != model.OutputText {
				logger = logging.NewJSON(cmd.ErrOrStderr(), settings.Verbose)
			}
			if settings.ConfigFile != "" {
				logger.Debug().Str("path", settings.ConfigFile).Msg("loaded config file")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, settingsKey{}, settings)
			cmd.SetContext(logger.WithContext(ctx))
			return nil
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewEncodeCommand())
	rootCmd.AddCommand(NewDecodeCommand())
	rootCmd.AddCommand(NewCapacityCommand())

	return rootCmd
}

// Execute runs the root command and exits the process with the code
// matching the outcome. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(Run(rootCmd)))
}

// Run executes rootCmd and returns the exit code instead of exiting.
// Errors are written to the command's error stream.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Run(rootCmd *cobra.Command) model.ExitCode {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return model.ExitSuccess
	}

	format := errorFormat(cmd)
	w := rootCmd.ErrOrStderr()

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, format, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, format, err.Error(), nil)
	return model.ExitGeneralError
}

// settingsFrom returns the settings attached by PersistentPreRunE, or nil
// when the command failed before they were resolved.
func settingsFrom(ctx context.Context) *config.Settings {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(settingsKey{}).(*config.Settings)
	return s
}

// settingsOrDefault falls back to the built-in defaults when no settings
// were attached, e.g. when a run function is called directly.
func settingsOrDefault(s *config.Settings) *config.Settings {
	if s != nil {
		return s
	}
	return &config.Settings{Bits: model.DefaultBitDepth, Output: model.OutputText}
}

// loggerFrom returns the logger attached to ctx. zerolog.Ctx falls back
// to a disabled logger, so callers never need a nil check.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// errorFormat picks the output format for an error. Argument validation
// happens before settings are resolved, so the raw --output flag is
// consulted as a fallback.
func errorFormat(cmd *cobra.Command) model.OutputFormat {
	if cmd == nil {
		return model.OutputText
	}
	if s := settingsFrom(cmd.Context()); s != nil {
		return s.Output
	}
	if f := cmd.Flags().Lookup(config.FlagOutput); f != nil {
		if format, err := model.ParseOutputFormat(f.Value.String()); err == nil {
			return format
		}
	}
	return model.OutputText
}

// codecError maps stego sentinel errors to CLIErrors with the matching
// exit code.
func codecError(message string, err error) error {
	code := model.ExitGeneralError
	switch {
	case errors.Is(err, stego.ErrSecretTooLarge):
		code = model.ExitSecretTooLarge
	case errors.Is(err, stego.ErrSecretNotFound):
		code = model.ExitSecretNotFound
	case errors.Is(err, stego.ErrInvalidBitDepth), errors.Is(err, stego.ErrSecretContainsDelimiter):
		code = model.ExitInvalidArgument
	}
	return model.WrapCLIError(code, message, err)
}

// printError outputs an error message in the requested format.
// Errors always go to stderr, even in JSON mode, because stdout is
// reserved for successful command output.
func printError(w io.Writer, format model.OutputFormat, message string, underlying error) {
	if format == model.OutputText {
		if underlying != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(w, "Error: %s\n", message)
		}
		return
	}

	body := errorBody{Message: message}
	if underlying != nil {
		body.Detail = underlying.Error()
	}
	if err := render(w, format, errorEnvelope{Error: body}, nil); err != nil {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// errorEnvelope is the structured error document: {"error": {...}}.
type errorEnvelope struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Message string `json:"message" yaml:"message"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}
