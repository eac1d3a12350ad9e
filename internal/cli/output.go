package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// render writes v to w in the given format. For OutputText, text is
// called instead; it may be nil when v has no text form.
func render(w io.Writer, format model.OutputFormat, v interface{}, text func(io.Writer)) error {
	switch format {
	case model.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case model.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return enc.Close()

	default:
		if text == nil {
			return fmt.Errorf("no text representation for %T", v)
		}
		text(w)
		return nil
	}
}

// formatBytes renders a byte count with a binary unit for text output.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
