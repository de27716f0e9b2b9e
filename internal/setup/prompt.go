package setup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattercrypt/mattercrypt/internal/utils"
)

// Prompter abstracts interactive terminal input so the wizard's retry and
// validation logic is testable without a real terminal.
type Prompter interface {
	// Prompt asks for a visible value. An error means the operator cancelled
	// (EOF) or input is unavailable.
	Prompt(label string) (string, error)

	// PromptSecret asks for a hidden value (no echo).
	PromptSecret(label string) (string, error)
}

// TerminalPrompter reads prompt answers from stdin, with hidden input for
// secrets. Labels are printed to stderr so piped stdout stays clean.
type TerminalPrompter struct {
	in *bufio.Reader
}

// NewTerminalPrompter returns a Prompter reading from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(os.Stdin)}
}

// Prompt asks for a visible value on the terminal.
func (p *TerminalPrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", fmt.Errorf("input closed")
	}
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// PromptSecret asks for a hidden value on the terminal.
func (p *TerminalPrompter) PromptSecret(label string) (string, error) {
	return utils.ReadPassword(label + ": ")
}
