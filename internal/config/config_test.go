package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap превращает map в функцию getenv
func envMap(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]string{"status"}, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.HashCode)
	assert.False(t, cfg.ShowVersion)
	assert.Equal(t, []string{"status"}, cfg.Args)
	assert.Equal(t, AccessCodeSources{}, cfg.AccessCode)
}

func TestParse_Flags(t *testing.T) {
	args := []string{
		"--db", "/tmp/x.db",
		"--backend", "sqlite",
		"--log-level", "debug",
		"--hash-code",
		"--access-code", "1234",
		"--access-code-file", "/tmp/code",
		"profile", "add",
	}

	cfg, err := Parse(args, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.HashCode)
	assert.Equal(t, "1234", cfg.AccessCode.Arg)
	assert.Equal(t, "/tmp/code", cfg.AccessCode.File)
	assert.Equal(t, []string{"profile", "add"}, cfg.Args)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	env := envMap(map[string]string{
		EnvDB:             "/data/env.db",
		EnvBackend:        "MEMORY",
		EnvLogLevel:       "error",
		EnvHashCode:       "true",
		EnvAccessCode:     "from-env",
		EnvAccessCodeFile: "/env/code",
	})

	cfg, err := Parse([]string{"--db", "flag.db", "--backend", "sqlite", "--access-code-file", "/flag/code"}, env)
	require.NoError(t, err)

	assert.Equal(t, "/data/env.db", cfg.DBPath)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.HashCode)
	assert.Equal(t, "from-env", cfg.AccessCode.Env)
	assert.Equal(t, "/env/code", cfg.AccessCode.File)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown flag", args: []string{"--server", "x"}},
		{name: "unknown backend flag", args: []string{"--backend", "redis"}},
		{name: "unknown backend env", env: map[string]string{EnvBackend: "redis"}},
		{name: "bad hash env", env: map[string]string{EnvHashCode: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]string{"--backend", "redis"}, envMap(nil))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestParse_FlagsAfterCommand(t *testing.T) {
	rejected := [][]string{
		{"login", "--access-code", "1234"},
		{"login", "-access-code=1234"},
		{"profile", "list", "--db", "other.db"},
		{"status", "--hash-code"},
	}
	for _, args := range rejected {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := Parse(args, envMap(nil))
			assert.ErrorIs(t, err, ErrMisplacedFlag)
		})
	}

	accepted := [][]string{
		{"orphans", "--purge"},
		{"emergency", "remove-allergy", "p1", "-1"},
		{"log", "add", "p1", "--", "--db"},
		{"--access-code", "1234", "login"},
	}
	for _, args := range accepted {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			cfg, err := Parse(args, envMap(nil))
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Args)
		})
	}
}

func TestParse_Version(t *testing.T) {
	cfg, err := Parse([]string{"--version"}, envMap(nil))
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
	assert.Empty(t, cfg.Args)
}

func writeCodeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "code.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve_Priority(t *testing.T) {
	file := writeCodeFile(t, "from-file\n")

	tests := []struct {
		name    string
		sources AccessCodeSources
		want    string
		wantOK  bool
	}{
		{name: "env wins", sources: AccessCodeSources{Env: "from-env", File: file, Arg: "from-arg"}, want: "from-env", wantOK: true},
		{name: "file before arg", sources: AccessCodeSources{File: file, Arg: "from-arg"}, want: "from-file", wantOK: true},
		{name: "arg", sources: AccessCodeSources{Arg: "from-arg"}, want: "from-arg", wantOK: true},
		{name: "nothing set", sources: AccessCodeSources{}, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok, err := tt.sources.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

// Пробелы внутри и по краям кода значимы, снимается только перевод строки
func TestResolve_FileKeepsSpaces(t *testing.T) {
	file := writeCodeFile(t, " ab cd \r\n")

	code, ok, err := AccessCodeSources{File: file}.Resolve()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, " ab cd ", code)
}

func TestResolve_FileErrors(t *testing.T) {
	_, _, err := AccessCodeSources{File: writeCodeFile(t, "\n")}.Resolve()
	assert.ErrorIs(t, err, ErrEmptyCodeFile)

	_, _, err = AccessCodeSources{File: filepath.Join(t.TempDir(), "missing")}.Resolve()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
