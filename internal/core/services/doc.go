// Package services contains the core business logic and orchestrates
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies.
package services
