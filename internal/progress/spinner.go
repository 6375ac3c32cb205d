package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity while a step runs. On non-terminals it degrades
// to printing the final status line only.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	message string
}

// NewSpinner returns a spinner writing to w.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins spinning with message.
func (sp *Spinner) Start(message string) {
	sp.message = message
	if !sp.caps.IsTTY {
		return
	}
	sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(sp.w))
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Success stops the spinner and prints a success line.
func (sp *Spinner) Success(message string) {
	sp.finish(sp.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (sp *Spinner) Fail(message string) {
	sp.finish(sp.symbols.Failure, message)
}

func (sp *Spinner) finish(symbol, message string) {
	if sp.s != nil {
		sp.s.Stop()
		sp.s = nil
	}
	if message == "" {
		message = sp.message
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, message)
}
