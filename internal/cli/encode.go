// Package cli: encode.go implements the "lsb-steg encode" command.
//
// Orchestration steps:
//  1. Reject output paths that are not PNG
//  2. Open and decode the carrier image
//  3. Read the secret (file or stdin)
//  4. Embed the secret with the configured bit depth
//  5. Save the carrier as PNG and report the result
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

// EncodeResult is the structured output of the encode command.
type EncodeResult struct {
	Input       string         `json:"input" yaml:"input"`
	InputFormat string         `json:"inputFormat" yaml:"inputFormat"`
	Output      string         `json:"output" yaml:"output"`
	BitDepth    model.BitDepth `json:"bitDepth" yaml:"bitDepth"`
	SecretBytes int            `json:"secretBytes" yaml:"secretBytes"`
	Capacity    int            `json:"capacityBytes" yaml:"capacityBytes"`
}

// NewEncodeCommand creates the "encode" cobra command.
func NewEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <input-image> <secret-file> <output-png>",
		Short: "Hide a secret inside an image",
		Long: `Hide the contents of a secret file inside an image.

The input can be any supported image format (PNG, JPEG, GIF, BMP, TIFF,
WebP). The result is always written as PNG. Use "-" as the secret file to
read the secret from stdin.

Examples:
  lsb-steg encode photo.jpg secret.txt photo-secret.png
  lsb-steg encode --bits 4 photo.png secret.txt out.png
  echo "meet at noon" | lsb-steg encode photo.png - out.png`,

		Args: cobra.ExactArgs(3),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), args[0], args[1], args[2])
		},
	}

	return cmd
}

// runEncode is the main orchestration function for the encode command.
func runEncode(ctx context.Context, stdout io.Writer, stdin io.Reader, inputPath, secretPath, outputPath string) error {
	settings := settingsOrDefault(settingsFrom(ctx))
	logger := loggerFrom(ctx)

	// Step 1: Fail fast on a non-PNG destination before doing any work.
	if !imageio.IsPNGPath(outputPath) {
		return model.NewCLIError(model.ExitInvalidArgument,
			fmt.Sprintf("image must be saved with PNG format: %s", outputPath))
	}

	// Step 2: Load the carrier.
	img, err := imageio.OpenImage(inputPath)
	if err != nil {
		return err
	}
	b := img.Pixels.Bounds()
	logger.Debug().
		Str("path", inputPath).
		Str("format", img.Format).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("opened carrier image")

	// Step 3: Read the secret.
	secret, err := imageio.OpenSecret(secretPath, stdin)
	if err != nil {
		return err
	}
	logger.Debug().Int("bytes", len(secret)).Msg("read secret")

	// Step 4: Embed.
	capacity := stego.CapacityOf(img.Pixels, settings.Bits)
	if err := stego.Encode(img.Pixels, secret, settings.Bits); err != nil {
		return codecError("the secret could not be encoded", err)
	}
	logger.Debug().
		Int("bits", int(settings.Bits)).
		Int("capacity", capacity.MaxSecretBytes).
		Msg("secret embedded")

	// Step 5: Persist and report.
	if err := imageio.SaveImage(outputPath, img.Pixels); err != nil {
		return err
	}

	result := EncodeResult{
		Input:       inputPath,
		InputFormat: img.Format,
		Output:      outputPath,
		BitDepth:    settings.Bits,
		SecretBytes: len(secret),
		Capacity:    capacity.MaxSecretBytes,
	}
	return render(stdout, settings.Output, result, func(w io.Writer) {
		printEncodeResultText(w, result)
	})
}

// printEncodeResultText outputs the encode result as human-readable text.
func printEncodeResultText(w io.Writer, r EncodeResult) {
	fmt.Fprintf(w, "Encoded %s secret into %s using %d bit(s) per channel (capacity %s)\n",
		formatBytes(r.SecretBytes), r.Output, r.BitDepth, formatBytes(r.Capacity))
}
