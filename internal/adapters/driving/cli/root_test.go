package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

func TestRootCmd_RegistersQueryCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[strings.Fields(cmd.Use)[0]] = true
	}

	for _, mode := range domain.Modes {
		assert.True(t, names[mode.String()], "expected %q command", mode)
	}
	assert.True(t, names["version"])
}

func TestQueryCommands_RejectMissingInput(t *testing.T) {
	for _, mode := range domain.Modes {
		t.Run(mode.String(), func(t *testing.T) {
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs([]string{mode.String()})
			defer rootCmd.SetArgs(nil)

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNoInput)
			assert.Contains(t, err.Error(), mode.String())
		})
	}
}

func TestExecute_PrintsToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStdout := os.Stdout
	os.Stdout = w
	defer func() {
		os.Stdout = origStdout
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	execErr := Execute()
	require.NoError(t, w.Close())
	out, readErr := io.ReadAll(r)
	os.Stdout = origStdout

	require.NoError(t, execErr)
	require.NoError(t, readErr)
	assert.Contains(t, string(out), "kimi-advisor version",
		"answer must land on stdout, not the diagnostic channel")
}

func TestQueryCommands_DashReadsInjectedInput(t *testing.T) {
	t.Setenv("KIMI_API_KEY", "")
	require.NoError(t, os.Unsetenv("KIMI_API_KEY"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("piped question\n"))
	rootCmd.SetArgs([]string{"ask", "-"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	// The injected reader is consumed, so the failure is the missing key,
	// never a missing prompt.
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoInput)
	assert.Contains(t, err.Error(), "KIMI_API_KEY")
}

func TestQueryCommands_ShareFlagSet(t *testing.T) {
	for _, cmd := range []string{"ask", "review", "decompose"} {
		sub, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		for _, flag := range []string{"file", "max-tokens", "json", "show-reasoning"} {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s missing --%s", cmd, flag)
		}
	}
}
