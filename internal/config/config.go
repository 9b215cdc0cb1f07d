// Package config reads the carenest command line and environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iudanet/carenest/internal/logging"
)

// Storage backends
const (
	BackendBolt   = "bbolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables. Each one overrides the matching flag
const (
	EnvDB             = "CARENEST_DB"
	EnvBackend        = "CARENEST_BACKEND"
	EnvLogLevel       = "CARENEST_LOG_LEVEL"
	EnvHashCode       = "CARENEST_HASH_CODE"
	EnvAccessCode     = "CARENEST_ACCESS_CODE"
	EnvAccessCodeFile = "CARENEST_ACCESS_CODE_FILE"
)

// DefaultDBPath is the database file used when neither --db nor CARENEST_DB is set
const DefaultDBPath = "carenest.db"

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrEmptyCodeFile  = errors.New("access code file is empty")
	// ErrMisplacedFlag: разбор флагов останавливается на команде, поэтому
	// глобальный флаг после нее был бы молча проигнорирован
	ErrMisplacedFlag = errors.New("options must come before the command")
)

// Config holds everything main needs to wire the application
type Config struct {
	DBPath      string
	Backend     string
	LogLevel    string
	AccessCode  AccessCodeSources
	Args        []string
	HashCode    bool
	ShowVersion bool
}

// AccessCodeSources are the non-interactive places an access code can come from
type AccessCodeSources struct {
	Env  string
	File string
	Arg  string
}

// Parse parses args (without the program name) and applies environment overrides.
// getenv is os.Getenv outside of tests
func Parse(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("carenest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&cfg.DBPath, "db", DefaultDBPath, "Path to local database")
	fs.StringVar(&cfg.Backend, "backend", BackendBolt, "Storage backend: bbolt, sqlite or memory")
	fs.StringVar(&cfg.LogLevel, "log-level", logging.DefaultLevel, "Diagnostics level: debug, info, warn, error")
	fs.BoolVar(&cfg.HashCode, "hash-code", false, "Store the access code as an argon2id hash")
	fs.StringVar(&cfg.AccessCode.Arg, "access-code", "", "Access code (not recommended, use env var or file)")
	fs.StringVar(&cfg.AccessCode.File, "access-code-file", "", "Path to file containing the access code")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	cfg.Args = fs.Args()
	if err := checkMisplacedFlags(fs, cfg.Args); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendBolt, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	return cfg, nil
}

// checkMisplacedFlags rejects a global flag written after the command.
// Flags the global set doesn't know (like orphans --purge) belong to the command
func checkMisplacedFlags(fs *flag.FlagSet, args []string) error {
	for _, arg := range args {
		if arg == "--" {
			return nil
		}
		name, ok := strings.CutPrefix(arg, "-")
		if !ok {
			continue
		}
		name = strings.TrimPrefix(name, "-")
		name, _, _ = strings.Cut(name, "=")
		if name != "" && fs.Lookup(name) != nil {
			return fmt.Errorf("%w: %s", ErrMisplacedFlag, arg)
		}
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvHashCode); v != "" {
		hash, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHashCode, err)
		}
		c.HashCode = hash
	}
	if v := getenv(EnvAccessCodeFile); v != "" {
		c.AccessCode.File = v
	}
	c.AccessCode.Env = getenv(EnvAccessCode)

	return nil
}

// Resolve returns the access code from the first configured source:
// 1. CARENEST_ACCESS_CODE environment variable
// 2. --access-code-file (file path)
// 3. --access-code (command line)
// ok is false when none is set and the caller should prompt
func (s AccessCodeSources) Resolve() (code string, ok bool, err error) {
	// Priority 1: Environment variable
	if s.Env != "" {
		return s.Env, true, nil
	}

	// Priority 2: File
	if s.File != "" {
		content, err := os.ReadFile(s.File)
		if err != nil {
			return "", false, fmt.Errorf("failed to read access code file: %w", err)
		}
		// Убираем trailing newline
		code := strings.TrimRight(string(content), "\r\n")
		if code == "" {
			return "", false, ErrEmptyCodeFile
		}
		return code, true, nil
	}

	// Priority 3: CLI parameter
	if s.Arg != "" {
		return s.Arg, true, nil
	}

	return "", false, nil
}
