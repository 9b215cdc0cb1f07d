package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHasher использует мало памяти, чтобы тесты шли быстро
func testHasher() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}

	stored, err := h.Hash("abcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd", stored)

	assert.True(t, h.Verify(stored, "abcd"))
	assert.False(t, h.Verify(stored, "ABCD"))
	assert.False(t, h.Verify(stored, "abcd "))
	assert.False(t, h.Verify(stored, ""))
	assert.False(t, h.NeedsRehash(stored))
}

func TestPlainHasher_VerifiesArgon2Hashes(t *testing.T) {
	stored, err := testHasher().Hash("1234")
	require.NoError(t, err)

	// Переключение обратно на открытый текст не блокирует пользователя
	assert.True(t, PlainHasher{}.Verify(stored, "1234"))
	assert.False(t, PlainHasher{}.Verify(stored, "4321"))
	assert.False(t, PlainHasher{}.NeedsRehash(stored))
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	stored, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.True(t, IsArgon2Hash(stored))
	assert.NotContains(t, stored, "correct horse")

	assert.True(t, h.Verify(stored, "correct horse"))
	assert.False(t, h.Verify(stored, "Correct horse"))
	assert.False(t, h.NeedsRehash(stored))
}

func TestArgon2Hasher_SaltsEveryHash(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("1234")
	require.NoError(t, err)
	second, err := h.Hash("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify(first, "1234"))
	assert.True(t, h.Verify(second, "1234"))
}

func TestArgon2Hasher_VerifiesWithStoredParameters(t *testing.T) {
	stored, err := testHasher().Hash("1234")
	require.NoError(t, err)

	// Хешер с другими параметрами все равно проверяет старый хеш
	other := Argon2Hasher{Time: 2, Memory: 2048, Threads: 2, KeyLen: 16}
	assert.True(t, other.Verify(stored, "1234"))
}

func TestArgon2Hasher_LegacyPlaintext(t *testing.T) {
	h := testHasher()

	assert.True(t, h.Verify("abcd", "abcd"))
	assert.False(t, h.Verify("abcd", "abce"))
	assert.True(t, h.NeedsRehash("abcd"))
}

func TestArgon2Hasher_EmptyCode(t *testing.T) {
	_, err := testHasher().Hash("")
	assert.Error(t, err)
}

func TestVerifyArgon2_Malformed(t *testing.T) {
	malformed := []string{
		"$argon2id$",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		// параметры, на которых argon2.IDKey паникует
		"$argon2id$v=19$m=0,t=0,p=0$AAAA$AAAA",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHQ$a2V5a2V5",
		// слишком дорогие или неполные параметры
		"$argon2id$v=19$m=1024,t=1000,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=4,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5a2V5",
	}

	for _, stored := range malformed {
		t.Run(stored, func(t *testing.T) {
			h := testHasher()
			assert.False(t, IsArgon2Hash(stored))
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify(stored, "1234"))
				assert.False(t, PlainHasher{}.Verify(stored, "1234"))
			})
			// Нераспознанное значение сравнивается как открытый текст
			assert.True(t, h.Verify(stored, stored))
			assert.True(t, PlainHasher{}.Verify(stored, stored))
			assert.True(t, h.NeedsRehash(stored))
		})
	}
}

func TestNewArgon2Hasher_Defaults(t *testing.T) {
	h := NewArgon2Hasher()
	assert.Equal(t, uint32(Argon2Time), h.Time)
	assert.Equal(t, uint32(Argon2Memory), h.Memory)
	assert.Equal(t, uint8(Argon2Threads), h.Threads)
	assert.Equal(t, uint32(Argon2KeyLen), h.KeyLen)
}

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}
