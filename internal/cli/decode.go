// Package cli: decode.go implements the "lsb-steg decode" command.
//
// The decode command reads the secret back out of an encoded image and
// writes it to a file, or to stdout when the destination is "-". In the
// stdout case no summary is printed so the secret can be piped.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/lsb-steg/internal/imageio"
	"github.com/shinji-kodama/lsb-steg/internal/model"
	"github.com/shinji-kodama/lsb-steg/internal/stego"
)

// DecodeResult is the structured output of the decode command.
type DecodeResult struct {
	Image       string         `json:"image" yaml:"image"`
	Output      string         `json:"output" yaml:"output"`
	BitDepth    model.BitDepth `json:"bitDepth" yaml:"bitDepth"`
	SecretBytes int            `json:"secretBytes" yaml:"secretBytes"`
}

// NewDecodeCommand creates the "decode" cobra command.
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <image> <secret-output>",
		Short: "Recover a secret hidden in an image",
		Long: `Recover a secret previously hidden with "encode".

The --bits value must match the one used for encoding. Use "-" as the
secret output to print the secret to stdout.

Examples:
  lsb-steg decode photo-secret.png secret.txt
  lsb-steg decode --bits 4 out.png -`,

		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}

	return cmd
}

// runDecode is the main logic function for the decode command.
func runDecode(ctx context.Context, stdout io.Writer, imagePath, secretPath string) error {
	settings := settingsOrDefault(settingsFrom(ctx))
	logger := loggerFrom(ctx)

	img, err := imageio.OpenImage(imagePath)
	if err != nil {
		return err
	}
	logger.Debug().Str("path", imagePath).Str("format", img.Format).Msg("opened encoded image")

	secret, err := stego.Decode(img.Pixels, settings.Bits)
	if err != nil {
		return codecError(fmt.Sprintf("no secret found in %s at %d bit(s) per channel", imagePath, settings.Bits), err)
	}
	logger.Debug().Int("bytes", len(secret)).Int("bits", int(settings.Bits)).Msg("secret recovered")

	if err := imageio.WriteSecret(secretPath, secret, stdout); err != nil {
		return err
	}
	if secretPath == imageio.StdioPath {
		return nil
	}

	result := DecodeResult{
		Image:       imagePath,
		Output:      secretPath,
		BitDepth:    settings.Bits,
		SecretBytes: len(secret),
	}
	return render(stdout, settings.Output, result, func(w io.Writer) {
		fmt.Fprintf(w, "Decoded %s secret from %s into %s\n",
			formatBytes(result.SecretBytes), result.Image, result.Output)
	})
}
