package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	require.NotContains(t, encoded, "correct horse battery staple")

	ok, err := hasher.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	first, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	second, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	// Different salts must yield different encodings for the same input.
	assert.NotEqual(t, first, second)

	for _, encoded := range []string{first, second} {
		ok, err := hasher.Verify("samepassword", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestArgon2Hasher_EmptyPassword(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()

	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "plainly not a hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=3,p=4"},
		{"bad parameters", "$argon2id$v=19$bogus$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := hasher.Verify("whatever", tc.encoded)
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
