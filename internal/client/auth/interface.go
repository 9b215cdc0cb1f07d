package auth

import "context"

// Service defines the access gate operations used by the CLI.
// The gate decides whether the main application is reachable; it keeps
// the authenticated flag and the access code in the key-value store.
type Service interface {
	// CurrentState evaluates the gate from stored state
	CurrentState(ctx context.Context) State

	// Setup creates the access code on first use and unlocks the session
	Setup(ctx context.Context, code, confirm string) (State, error)

	// Login unlocks the session when code matches the stored access code
	Login(ctx context.Context, code string) (State, error)

	// ChangeCode replaces the access code of an unlocked session
	ChangeCode(ctx context.Context, current, next, confirm string) error

	// Logout locks the session; the access code stays
	Logout(ctx context.Context)

	// Reset wipes every stored record, the only way out of a forgotten code
	Reset(ctx context.Context) error
}
