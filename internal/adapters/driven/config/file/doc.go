// Package file provides file-based implementations of driven port interfaces.
// These adapters read from the local filesystem and process environment.
//
// Adapters:
//   - Config: dotenv + TOML + environment configuration, built once at startup
//   - PromptStore: per-mode system instruction files with embedded defaults
package file
