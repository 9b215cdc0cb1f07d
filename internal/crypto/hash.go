package crypto

import (
	"crypto/subtle"
)

// CodeHasher превращает код доступа в хранимую строку и проверяет кандидатов.
// Реализации обязаны понимать оба формата (открытый текст и argon2id),
// чтобы смена настройки не блокировала пользователя.
type CodeHasher interface {
	// Hash returns the value to persist for code
	Hash(code string) (string, error)

	// Verify reports whether candidate matches the stored value
	Verify(stored, candidate string) bool

	// NeedsRehash reports whether stored should be rewritten with Hash
	NeedsRehash(stored string) bool
}

// PlainHasher keeps the access code as is and compares strings exactly.
// This is the storage layout of existing installations.
type PlainHasher struct{}

// Compile-time check that PlainHasher implements CodeHasher
var _ CodeHasher = PlainHasher{}

func (PlainHasher) Hash(code string) (string, error) {
	return code, nil
}

func (PlainHasher) Verify(stored, candidate string) bool {
	return verifyStored(stored, candidate)
}

func (PlainHasher) NeedsRehash(string) bool {
	return false
}

// verifyPlain сравнивает строки за постоянное время (регистр учитывается)
func verifyPlain(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// IsArgon2Hash reports whether stored is a complete argon2id hash with usable
// parameters. Anything else, including a broken hash, is compared as plaintext
func IsArgon2Hash(stored string) bool {
	_, err := parseArgon2(stored)
	return err == nil
}
