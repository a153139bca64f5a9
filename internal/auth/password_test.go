package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, VerifyPassword("correct horse", hash))
	assert.Error(t, VerifyPassword("wrong horse", hash))
	assert.Error(t, VerifyPassword("correct horse", "not-a-hash"))
}
