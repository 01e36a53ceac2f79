package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "consentd/pkg/domain-errors"
)

func TestGenerateAccessKey(t *testing.T) {
	key, err := GenerateAccessKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "uak_"))
	assert.Greater(t, len(key), len("uak_"))

	other, err := GenerateAccessKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)

	other, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestHashAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		secret, err := GenerateSecret()
		require.NoError(t, err)

		hash, err := Hash(secret)
		require.NoError(t, err)
		assert.NotEqual(t, secret, hash)

		require.NoError(t, Verify(secret, hash))
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		hash, err := Hash("correct")
		require.NoError(t, err)

		err = Verify("wrong", hash)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := Hash("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
