package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carenest/internal/client/iocli"
	"github.com/iudanet/carenest/internal/config"
)

func newTerm(out *bytes.Buffer, input ...string) *iocli.IOMock {
	next := func(string) (string, error) {
		if len(input) == 0 {
			return "", io.EOF
		}
		line := input[0]
		input = input[1:]
		return line, nil
	}
	return &iocli.IOMock{
		PrintlnFunc:      func(a ...any) { _, _ = fmt.Fprintln(out, a...) },
		PrintfFunc:       func(format string, a ...any) { _, _ = fmt.Fprintf(out, format, a...) },
		WriteFunc:        out.Write,
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
	}
}

func noEnv(string) string { return "" }

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"--version"}, noEnv, newTerm(&out)))
	assert.Contains(t, out.String(), "Version:    dev")
}

func TestRun_InvalidFlags(t *testing.T) {
	var out bytes.Buffer

	assert.Error(t, run(context.Background(), []string{"--backend", "redis", "status"}, noEnv, newTerm(&out)))
	assert.Error(t, run(context.Background(), []string{"--log-level", "loud", "status"}, noEnv, newTerm(&out)))
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{config.BackendBolt, config.BackendSQLite, config.BackendMemory} {
		t.Run(name, func(t *testing.T) {
			cfg := &config.Config{Backend: name, DBPath: filepath.Join(dir, name+".db")}

			backend, err := openBackend(ctx, cfg)
			require.NoError(t, err)
			require.NoError(t, backend.Put(ctx, "k", []byte(`"v"`)))
			require.NoError(t, backend.Close())
		})
	}

	_, err := openBackend(ctx, &config.Config{Backend: "redis"})
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

// Сессия сохраняется между запусками процесса до выхода
func TestRun_SessionAcrossInvocations(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "carenest.db")
	base := []string{"--db", db}

	var out bytes.Buffer
	require.NoError(t, run(ctx, append(base, "setup"), noEnv, newTerm(&out, "1234", "1234")))

	out.Reset()
	require.NoError(t, run(ctx, append(base, "profile", "add"), noEnv, newTerm(&out, "Sam", "", "", "")))

	out.Reset()
	require.NoError(t, run(ctx, append(base, "profile", "list"), noEnv, newTerm(&out)))
	assert.Contains(t, out.String(), "1. Sam")

	require.NoError(t, run(ctx, append(base, "logout"), noEnv, newTerm(&out)))
	assert.Error(t, run(ctx, append(base, "profile", "list"), noEnv, newTerm(&out)))

	env := func(key string) string {
		if key == config.EnvAccessCode {
			return "1234"
		}
		return ""
	}
	require.NoError(t, run(ctx, append(base, "login"), env, newTerm(&out)))
	require.NoError(t, run(ctx, append(base, "profile", "list"), noEnv, newTerm(&out)))
}

func TestRun_HashedCode(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "carenest.sqlite")
	base := []string{"--backend", "sqlite", "--db", db, "--hash-code"}

	var out bytes.Buffer
	require.NoError(t, run(ctx, append(base, "setup"), noEnv, newTerm(&out, "abcd", "abcd")))
	require.NoError(t, run(ctx, append(base, "logout"), noEnv, newTerm(&out)))

	assert.Error(t, run(ctx, append(base, "login"), noEnv, newTerm(&out, "abce", "")))
	require.NoError(t, run(ctx, append(base, "login"), noEnv, newTerm(&out, "abcd")))
}
