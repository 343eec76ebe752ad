package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"complianceconnect.backend/internal/infrastructure/seed"
	"complianceconnect.backend/pkg/crypto"
)

func init() {
	crypto.SetCost(bcrypt.MinCost)
}

func TestRun_DefaultsToFixturePassword(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))

	hash := strings.TrimSpace(strings.TrimPrefix(out.String(), "Bcrypt Hash: "))
	assert.True(t, crypto.CheckPassword(seed.DefaultPassword, hash))
}

func TestRun_HashesArgument(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"my-pass"}, &out))

	hash := strings.TrimSpace(strings.TrimPrefix(out.String(), "Bcrypt Hash: "))
	assert.True(t, crypto.CheckPassword("my-pass", hash))
}

func TestRun_EmailEmitsResetStatement(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-email", "O'Brien@Example.com", "my-pass"}, &out))

	stmt := out.String()
	assert.True(t, strings.HasPrefix(stmt, "UPDATE users SET password_hash = '$2"), stmt)
	assert.Contains(t, stmt, "WHERE email = 'o''brien@example.com';")
}

func TestRun_Errors(t *testing.T) {
	assert.Error(t, run([]string{"-unknown"}, &bytes.Buffer{}))

	orig := generateHashFn
	t.Cleanup(func() { generateHashFn = orig })

	generateHashFn = func(string) (string, error) { return "", errors.New("boom") }
	assert.ErrorContains(t, run([]string{"x"}, &bytes.Buffer{}), "failed to hash password")

	generateHashFn = func(string) (string, error) { return "$2a$04$not-a-real-hash", nil }
	assert.ErrorContains(t, run([]string{"x"}, &bytes.Buffer{}), "does not verify")
}

func TestMain_FailureIsFatal(t *testing.T) {
	origArgs, origGen, origFatal := os.Args, generateHashFn, fatalfFn
	t.Cleanup(func() { os.Args, generateHashFn, fatalfFn = origArgs, origGen, origFatal })

	os.Args = []string{"hash-gen", "x"}
	generateHashFn = func(string) (string, error) { return "", errors.New("boom") }
	var fatal string
	fatalfFn = func(format string, args ...interface{}) { fatal = format }

	main()
	assert.Equal(t, "hash-gen: %v", fatal)
}
