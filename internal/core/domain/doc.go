// Package domain defines the core business entities for kimi-advisor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AttachmentRecord: A validated, loaded file attachment
//   - RequestContent: The user message sent to the chat API
//   - Mode: One of the three fixed request personalities
//   - QueryResult: The (reasoning, answer) pair returned by a query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
