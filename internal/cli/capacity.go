// Package cli: capacity.go implements the "lsb-steg capacity" command.
//
// The capacity command reports how many secret bytes an image can carry
// at the configured bit depth. With --secret it also checks whether a
// particular secret file fits, without writing anything.
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

// capacityFlags holds the flag values for the capacity command.
type capacityFlags struct {
	secret string // --secret: secret file to test against the capacity
}

// CapacityResult is the structured output of the capacity command.
type CapacityResult struct {
	Image          string `json:"image" yaml:"image"`
	model.Capacity `yaml:",inline"`

	// SecretBytes and Fits are only set when --secret is given.
	SecretBytes *int  `json:"secretBytes,omitempty" yaml:"secretBytes,omitempty"`
	Fits        *bool `json:"fits,omitempty" yaml:"fits,omitempty"`
}

// NewCapacityCommand creates the "capacity" cobra command.
func NewCapacityCommand() *cobra.Command {
	flags := &capacityFlags{}

	cmd := &cobra.Command{
		Use:   "capacity <image>",
		Short: "Show how large a secret an image can hold",
		Long: `Show how many bytes of secret an image can hold at the configured
bit depth. Every pixel contributes three channels (red, green, blue).

Examples:
  lsb-steg capacity photo.png
  lsb-steg capacity --bits 2 --secret notes.txt photo.png
  lsb-steg capacity -o json photo.png`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapacity(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.secret, "secret", "", `Secret file to check against the capacity ("-" for stdin)`)

	return cmd
}

// runCapacity computes and prints the capacity report.
func runCapacity(ctx context.Context, stdout io.Writer, stdin io.Reader, imagePath string, flags *capacityFlags) error {
	settings := settingsOrDefault(settingsFrom(ctx))
	logger := loggerFrom(ctx)

	img, err := imageio.OpenImage(imagePath)
	if err != nil {
		return err
	}

	result := CapacityResult{
		Image:    imagePath,
		Capacity: stego.CapacityOf(img.Pixels, settings.Bits),
	}

	if flags.secret != "" {
		secret, err := imageio.OpenSecret(flags.secret, stdin)
		if err != nil {
			return err
		}
		n := len(secret)
		fits := stego.Fits(img.Pixels, n, settings.Bits)
		result.SecretBytes = &n
		result.Fits = &fits
		logger.Debug().Int("bytes", n).Bool("fits", fits).Msg("checked secret against capacity")
	}

	return render(stdout, settings.Output, result, func(w io.Writer) {
		printCapacityText(w, result)
	})
}

// printCapacityText outputs the capacity report as human-readable text.
func printCapacityText(w io.Writer, r CapacityResult) {
	fmt.Fprintf(w, "%s: %dx%d, %d channels\n", r.Image, r.Width, r.Height, r.Channels)
	fmt.Fprintf(w, "Capacity at %d bit(s) per channel: %s (%d bytes of secret)\n",
		r.BitDepth, formatBytes(r.Bytes), r.MaxSecretBytes)
	if r.Fits != nil && r.SecretBytes != nil {
		verdict := "fits"
		if !*r.Fits {
			verdict = "does not fit"
		}
		fmt.Fprintf(w, "Secret of %d bytes %s\n", *r.SecretBytes, verdict)
	}
}
