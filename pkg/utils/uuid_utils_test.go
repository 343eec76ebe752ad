package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestGenerateUUIDv7_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := GenerateUUIDv7()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(4), id.Version())
}

func TestParseID(t *testing.T) {
	want := uuid.New()

	got, err := ParseID(" " + want.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseID("")
	assert.Error(t, err)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
