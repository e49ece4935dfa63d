package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

func TestNewPromptStore_UsesGivenDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestPromptStore_Load_AllModesHaveDefaults(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	for _, mode := range domain.Modes {
		prompt, err := store.Load(mode.String())
		require.NoError(t, err, "mode %s", mode)
		assert.NotEmpty(t, prompt)
	}
}

func TestPromptStore_Load_CreatesDefaultFilesLazily(t *testing.T) {
	dir := t.TempDir()
	promptDir := filepath.Join(dir, "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	// Constructor performs no I/O
	_, statErr := os.Stat(promptDir)
	assert.True(t, os.IsNotExist(statErr))

	_, err = store.Load(domain.ModeAsk.String())
	require.NoError(t, err)

	for _, name := range []string{"ask.md", "review.md", "decompose.md", "README.md"} {
		_, statErr := os.Stat(filepath.Join(promptDir, name))
		assert.NoError(t, statErr, "expected %s to exist after first Load", name)
	}
}

func TestPromptStore_Load_FileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ask.md"),
		[]byte("Custom ask instruction.\n"),
		0600,
	))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load("ask")
	require.NoError(t, err)
	assert.Equal(t, "Custom ask instruction.", prompt, "file content wins, trimmed")
}

func TestPromptStore_Load_UnknownMode(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("chat")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPromptNotFound)
}

func TestPromptStore_Reload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load("review")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "review.md"),
		[]byte("Edited instruction."),
		0600,
	))

	// Cached until Reload
	cached, err := store.Load("review")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load("review")
	require.NoError(t, err)
	assert.Equal(t, "Edited instruction.", fresh)
}
