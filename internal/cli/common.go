package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/progress"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// loadConfig loads the layered configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: path,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		var verr *config.ValidationError
		if stderrors.As(err, &verr) {
			return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, verr.Error(),
				"Show the merged configuration with: relnotes config show",
				"List valid keys and values with: relnotes config keys",
			)
		}
		if path == "" {
			path = config.ProjectConfigPath()
		}
		return nil, clierrors.ConfigParseError(path, err)
	}
	return cfg, nil
}

// openStore opens the configured release store.
func openStore(cfg *config.Configuration) (*store.Store, error) {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, clierrors.StoreUnavailable(cfg.StorePath, err)
	}
	return st, nil
}

// storeErr maps store read/write failures onto a CLI error.
func storeErr(st *store.Store, err error) error {
	return clierrors.StoreUnavailable(st.Path(), err)
}

// resolveFormat returns --format when given, else the configured default.
func resolveFormat(cmd *cobra.Command, cfg *config.Configuration) (render.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = cfg.OutputFormat
	}
	f, err := render.ParseFormat(name)
	if err != nil {
		return "", clierrors.InvalidOutputFormat(name, render.ValidFormats())
	}
	return f, nil
}

// isPlain reports whether output to w should skip colors and icons.
func isPlain(cmd *cobra.Command, cfg *config.Configuration, w io.Writer) bool {
	if flag, _ := cmd.Flags().GetBool("plain"); flag {
		return true
	}
	if cfg != nil && cfg.Plain {
		return true
	}
	return !progress.DetectFor(w).SupportsColor
}

func renderOptions(cmd *cobra.Command, cfg *config.Configuration) render.Options {
	out := cmd.OutOrStdout()
	return render.Options{
		Plain: isPlain(cmd, cfg, out),
		Width: progress.DetectFor(out).WidthOr(80),
	}
}

func isVerbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// warnf writes a "Warning:" line to stderr.
func warnf(cmd *cobra.Command, cfg *config.Configuration, format string, args ...any) {
	w := cmd.ErrOrStderr()
	prefix := "Warning:"
	if !isPlain(cmd, cfg, w) {
		prefix = color.New(color.FgYellow, color.Bold).Sprint(prefix)
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// newSpinner returns a spinner on stderr so stdout stays machine-readable.
func newSpinner(cmd *cobra.Command) *progress.Spinner {
	w := cmd.ErrOrStderr()
	return progress.NewSpinner(w, progress.DetectFor(w))
}

// checkFiles returns MissingInputFile for the first unreadable path.
func checkFiles(paths []string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return clierrors.MissingInputFile(p)
		}
	}
	return nil
}
