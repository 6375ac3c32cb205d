// Package progress detects what the terminal can show and drives the
// spinner used by long-running commands.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes the output terminal.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols are the status markers and spinner set for a terminal.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects stdout.
func DetectTerminalCapabilities() TerminalCapabilities {
	return DetectFor(os.Stdout)
}

// DetectFor inspects w. Writers that are not files (buffers in tests,
// pipes wrapped by cobra) are never terminals. NO_COLOR disables color and
// RELNOTES_ASCII=1 forces ASCII symbols.
func DetectFor(w io.Writer) TerminalCapabilities {
	isTTY := false
	fd := -1
	if f, ok := w.(*os.File); ok {
		fd = int(f.Fd())
		isTTY = term.IsTerminal(fd)
	}

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELNOTES_ASCII") == "1"

	width := 0
	if isTTY {
		if cols, _, err := term.GetSize(fd); err == nil {
			width = cols
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// WidthOr returns the detected width, or fallback when unknown.
func (c TerminalCapabilities) WidthOr(fallback int) int {
	if c.Width > 0 {
		return c.Width
	}
	return fallback
}

// SelectSymbols picks Unicode or ASCII markers.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ...
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
