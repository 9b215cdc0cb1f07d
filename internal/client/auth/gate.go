package auth

import (
	"context"
	"fmt"

	"github.com/iudanet/carenest/internal/client/kv"
	"github.com/iudanet/carenest/internal/crypto"
	"github.com/iudanet/carenest/internal/models"
	"github.com/iudanet/carenest/internal/validation"
)

// State is a state of the access gate
type State int

const (
	// StateUninitialized - код доступа еще не создан
	StateUninitialized State = iota
	// StateSetup - идет первичная настройка кода
	StateSetup
	// StateLocked - код есть, сессия не аутентифицирована
	StateLocked
	// StateUnlocked - сессия открыта
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSetup:
		return "setup"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Gate implements Service over a kv.Store.
// One Gate lives for the whole process; it holds no secrets in memory.
type Gate struct {
	store  kv.Store
	hasher crypto.CodeHasher
	// setupStarted переводит Uninitialized в Setup после первой попытки настройки
	setupStarted bool
}

// Compile-time check that Gate implements Service
var _ Service = (*Gate)(nil)

// NewGate creates a gate. A nil hasher keeps codes as plaintext
func NewGate(store kv.Store, hasher crypto.CodeHasher) *Gate {
	if hasher == nil {
		hasher = crypto.PlainHasher{}
	}
	return &Gate{
		store:  store,
		hasher: hasher,
	}
}

// storedCode returns the persisted access code value
func (g *Gate) storedCode(ctx context.Context) (string, bool) {
	var code string
	if !g.store.Get(ctx, models.KeyAccessCode, &code) || code == "" {
		return "", false
	}
	return code, true
}

func (g *Gate) authenticated(ctx context.Context) bool {
	var flag bool
	return g.store.Get(ctx, models.KeyAuthenticated, &flag) && flag
}

// CurrentState evaluates the gate from stored state
func (g *Gate) CurrentState(ctx context.Context) State {
	if _, ok := g.storedCode(ctx); !ok {
		if g.setupStarted {
			return StateSetup
		}
		return StateUninitialized
	}

	if g.authenticated(ctx) {
		return StateUnlocked
	}

	return StateLocked
}

// Setup creates the access code. On success the session is unlocked.
// On failure nothing is persisted and the gate stays in Setup
func (g *Gate) Setup(ctx context.Context, code, confirm string) (State, error) {
	if _, ok := g.storedCode(ctx); ok {
		return g.CurrentState(ctx), ErrAlreadyConfigured
	}
	g.setupStarted = true

	if err := validation.ValidateAccessCode(code, confirm); err != nil {
		return StateSetup, err
	}

	stored, err := g.hasher.Hash(code)
	if err != nil {
		return StateSetup, fmt.Errorf("failed to hash access code: %w", err)
	}

	if !g.store.Set(ctx, models.KeyAccessCode, stored) {
		return StateSetup, ErrNotPersisted
	}

	if !g.store.Set(ctx, models.KeyAuthenticated, true) {
		// Откатываем код, чтобы не оставить полунастроенное состояние
		g.store.Remove(ctx, models.KeyAccessCode)
		return StateSetup, ErrNotPersisted
	}

	return StateUnlocked, nil
}

// Login compares code with the stored access code (exact, case-sensitive).
// There is no attempt counting: a wrong code can be retried immediately
func (g *Gate) Login(ctx context.Context, code string) (State, error) {
	stored, ok := g.storedCode(ctx)
	if !ok {
		return g.CurrentState(ctx), ErrNotConfigured
	}

	if !g.hasher.Verify(stored, code) {
		return StateLocked, ErrIncorrectCode
	}

	if !g.store.Set(ctx, models.KeyAuthenticated, true) {
		return StateLocked, ErrNotPersisted
	}

	// Обновляем устаревший формат хранения кода; неудача не мешает входу
	if g.hasher.NeedsRehash(stored) {
		if rehashed, err := g.hasher.Hash(code); err == nil {
			g.store.Set(ctx, models.KeyAccessCode, rehashed)
		}
	}

	return StateUnlocked, nil
}

// ChangeCode replaces the access code. Checks run in order:
// current code, new code length, new code confirmation
func (g *Gate) ChangeCode(ctx context.Context, current, next, confirm string) error {
	if g.CurrentState(ctx) != StateUnlocked {
		return ErrLocked
	}

	stored, _ := g.storedCode(ctx)
	if !g.hasher.Verify(stored, current) {
		return ErrCurrentCodeIncorrect
	}

	if err := validation.ValidateAccessCode(next, confirm); err != nil {
		return fmt.Errorf("new %w", err)
	}

	hashed, err := g.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash access code: %w", err)
	}

	if !g.store.Set(ctx, models.KeyAccessCode, hashed) {
		return ErrNotPersisted
	}

	return nil
}

// Logout clears the authenticated flag. The caller resets its own in-memory state
func (g *Gate) Logout(ctx context.Context) {
	if !g.store.Set(ctx, models.KeyAuthenticated, false) {
		g.store.Remove(ctx, models.KeyAuthenticated)
	}
}

// Reset removes every stored key including profiles and logs.
// After Reset the gate is Uninitialized again
func (g *Gate) Reset(ctx context.Context) error {
	if !g.store.Clear(ctx) {
		return ErrNotPersisted
	}
	g.setupStarted = false
	return nil
}
