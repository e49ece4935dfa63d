package driven

// PromptStore provides access to the per-mode system instruction texts.
// Implementations may load prompts from files, embed them in the binary,
// or both (file overrides with embedded fallbacks).
type PromptStore interface {
	// Load returns the system instruction for the given mode name.
	// Returns an error wrapping domain.ErrPromptNotFound when no
	// instruction text exists for the name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}
