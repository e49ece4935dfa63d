package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads the per-mode system instructions from user-editable
// files on disk, falling back to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains the embedded system instructions for the three
// modes. These are used when user files don't exist and as the initial
// content for new files.
var defaultPrompts = map[string]string{
	domain.ModeAsk.String(): `You are a pragmatic senior engineer giving a second opinion.
Answer the question directly and honestly. Prefer concrete recommendations
over balanced-sounding non-answers; when a trade-off genuinely depends on
context, say which context favours which side. Keep the answer short enough
to act on.`,

	domain.ModeReview.String(): `You are reviewing a plan written by another engineer.
Identify the weakest assumptions, missing failure cases, and hidden coupling.
Order findings by severity. For each finding, state the risk and a concrete
fix. If the plan is sound, say so briefly instead of inventing objections.`,

	domain.ModeDecompose.String(): `You decompose a task into subtasks another engineer can execute.
Produce a numbered list of subtasks. For each: a one-line goal, its inputs,
its outputs, and which earlier subtasks it depends on. Mark subtasks with no
mutual dependencies as parallelisable. Keep subtasks small enough to verify
independently.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.kimi-advisor/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".kimi-advisor", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the system instruction for the given mode name.
// On first call, initialises the prompt directory and creates default files.
// Returns the cached value if available, otherwise loads from file, falling
// back to the embedded default. Unknown names fail with
// domain.ErrPromptNotFound.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		defaultPrompt, ok := defaultPrompts[name]
		if !ok {
			return "", fmt.Errorf("%w: no instruction for mode %q (looked in %s)", domain.ErrPromptNotFound, name, s.promptDir)
		}
		prompt = defaultPrompt
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		// Another goroutine loaded it first, use their value
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".md")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a system instruction from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# kimi-advisor Prompts

This directory contains the system instructions for kimi-advisor's modes.

## Files

- ` + "`ask.md`" + ` - Open-ended advice
- ` + "`review.md`" + ` - Plan critique
- ` + "`decompose.md`" + ` - Task decomposition

## Customisation

Edit any file to change how a mode behaves. Changes take effect on the
next invocation. Delete a file to restore the built-in default.
`
	return os.WriteFile(path, []byte(content), 0600)
}
