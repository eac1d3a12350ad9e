package imageio

import (
	"fmt"
	"io"
	"os"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// StdioPath is the path argument meaning stdin (for reading) or stdout
// (for writing).
const StdioPath = "-"

// OpenSecret reads the secret to encode. A path of "-" reads from stdin.
func OpenSecret(path string, stdin io.Reader) ([]byte, error) {
	if path == StdioPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "error reading the secret from stdin", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := model.ExitGeneralError
		if os.IsNotExist(err) {
			code = model.ExitInputNotFound
		}
		return nil, model.WrapCLIError(code, "error opening the secret to encode", err)
	}
	return data, nil
}

// WriteSecret stores a decoded secret. A path of "-" writes to stdout.
func WriteSecret(path string, data []byte, stdout io.Writer) error {
	if path == StdioPath {
		if _, err := stdout.Write(data); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "secret could not be written", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("secret file could not be created: %s", path), err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return model.WrapCLIError(model.ExitGeneralError, "secret could not be written", err)
	}
	if err := f.Close(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "secret could not be written", err)
	}
	return nil
}
