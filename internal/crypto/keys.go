package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id по умолчанию
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 16
)

// Argon2Prefix starts every encoded argon2id hash
const Argon2Prefix = "$argon2id$"

// Пределы параметров, которые принимаются из хранимой строки
const (
	maxArgon2Time    = 16
	maxArgon2Memory  = 1024 * 1024
	maxArgon2KeyLen  = 64
	minArgon2SaltLen = 8
)

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Argon2Hasher stores the access code as a salted argon2id hash encoded as
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key> (raw base64).
// Legacy plaintext values still verify and report NeedsRehash.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// Compile-time check that Argon2Hasher implements CodeHasher
var _ CodeHasher = Argon2Hasher{}

// NewArgon2Hasher returns a hasher with the default parameters
func NewArgon2Hasher() Argon2Hasher {
	return Argon2Hasher{
		Time:    Argon2Time,
		Memory:  Argon2Memory,
		Threads: Argon2Threads,
		KeyLen:  Argon2KeyLen,
	}
}

func (h Argon2Hasher) Hash(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("access code cannot be empty")
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(code), salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		Argon2Prefix, argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h Argon2Hasher) Verify(stored, candidate string) bool {
	return verifyStored(stored, candidate)
}

func (h Argon2Hasher) NeedsRehash(stored string) bool {
	return !IsArgon2Hash(stored)
}

type argon2Params struct {
	salt    []byte
	key     []byte
	memory  uint32
	time    uint32
	threads uint8
}

// parseArgon2 разбирает закодированный хеш; параметры берутся из строки,
// поэтому старые хеши проверяются и после смены настроек
func parseArgon2(stored string) (*argon2Params, error) {
	parts := strings.Split(stored, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("failed to parse version: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	p := &argon2Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// validate отсекает параметры, на которых argon2.IDKey паникует или работает слишком долго
func (p *argon2Params) validate() error {
	if p.time < 1 || p.time > maxArgon2Time {
		return fmt.Errorf("argon2 time %d out of range", p.time)
	}
	if p.threads < 1 {
		return fmt.Errorf("argon2 parallelism %d out of range", p.threads)
	}
	if p.memory < 8*uint32(p.threads) || p.memory > maxArgon2Memory {
		return fmt.Errorf("argon2 memory %d out of range", p.memory)
	}
	if len(p.salt) < minArgon2SaltLen {
		return fmt.Errorf("argon2 salt too short")
	}
	if len(p.key) == 0 || len(p.key) > maxArgon2KeyLen {
		return fmt.Errorf("argon2 key length %d out of range", len(p.key))
	}
	return nil
}

// verifyStored проверяет кандидата по хешу, а если stored не разбирается как
// argon2id, сравнивает его как открытый текст
func verifyStored(stored, candidate string) bool {
	p, err := parseArgon2(stored)
	if err != nil {
		return verifyPlain(stored, candidate)
	}

	key := argon2.IDKey([]byte(candidate), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(key, p.key) == 1
}
