package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatError renders a CLIError for the terminal. Colors follow
// color.NoColor, so output is plain when stdout is not a terminal or
// NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

// FormatErrorPlain renders a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(errorLabel, "Error"),
		paint(categoryFmt, err.Category.String()),
		paint(errorMsg, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(usageLabel, "Usage: "), paint(usageText, err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixLabel, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(bullet, "•"), step)
		}
	}

	return sb.String()
}

// Fprint writes any error to w. CLIErrors anywhere in the chain get the
// structured layout; other errors are shown as runtime errors.
func Fprint(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), Err: err}
	}
	if plain {
		fmt.Fprint(w, FormatErrorPlain(cliErr))
		return
	}
	fmt.Fprint(w, FormatError(cliErr))
}
