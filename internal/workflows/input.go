package workflows

import (
	"fmt"
	"os"
	"strings"

	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
	"github.com/mattercrypt/mattercrypt/internal/utils"
)

// ResolveMessage picks the message content from exactly one source, in
// precedence order: positional argument, --file, piped stdin. Giving both
// an argument and a file is rejected rather than silently preferring one.
func ResolveMessage(arg, filePath string) (string, error) {
	if arg != "" && filePath != "" {
		return "", mcerrors.ErrConflictingInput
	}

	if arg != "" {
		return arg, nil
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("%w: file %s is empty", mcerrors.ErrNoMessage, filePath)
		}
		return string(data), nil
	}

	data, err := utils.ReadStdin()
	if err != nil {
		return "", fmt.Errorf("%w: %v", mcerrors.ErrNoMessage, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", mcerrors.ErrNoMessage
	}

	return string(data), nil
}
