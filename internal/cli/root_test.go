package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "relnotes", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "plain", "format"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
		})
	}
}

func TestRootCmd_Commands(t *testing.T) {
	want := map[string]string{
		"parse":     GroupParsing,
		"export":    GroupParsing,
		"import":    GroupStore,
		"delete":    GroupStore,
		"rollback":  GroupStore,
		"list":      GroupStore,
		"show":      GroupStore,
		"quarterly": GroupStore,
		"publish":   GroupIntegrations,
		"watch":     GroupIntegrations,
		"mcp":       GroupIntegrations,
		"config":    GroupConfiguration,
		"version":   GroupGettingStarted,
	}

	got := make(map[string]string)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = c.GroupID
	}
	for name, group := range want {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, group, got[name])
		})
	}
	assert.NotEmpty(t, rootCmd.Groups())
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                {err: nil, want: ExitSuccess},
		"exit error":         {err: NewExitError(ExitTimeout), want: ExitTimeout},
		"wrapped exit error": {err: fmt.Errorf("outer: %w", NewExitError(4)), want: 4},
		"generic":            {err: errors.New("boom"), want: ExitParseFailed},
		"argument":           {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration":      {err: clierrors.NewConfigError("bad"), want: ExitInvalidArguments},
		"prerequisite":       {err: clierrors.MissingInputFile("x.txt"), want: ExitMissingDependencies},
		"runtime":            {err: clierrors.NoReleasesDetected("x.txt", 0), want: ExitParseFailed},
		"canceled":           {err: fmt.Errorf("parse: %w", errContextCanceled()), want: ExitTimeout},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "exit code 3", NewExitError(3).Error())
}

func errContextCanceled() error {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx.Err()
}
