package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled output for the send pipeline. Info lines show up
// with --verbose, debug lines with --debug, warnings and errors always.
type Logger struct {
	Verbose bool
	Debug   bool
}

func New(verbose, debug bool) Logger {
	return Logger{Verbose: verbose, Debug: debug}
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

// Warnf reports a recoverable condition, such as falling back from the OS
// keyring to a one-off password prompt.
func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[error] ")+msg+"\n", args...)
}
