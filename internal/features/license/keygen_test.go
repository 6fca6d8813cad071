package license

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdverbeke/cinevault-server-go/pkg/validation"
)

var keyFormat = regexp.MustCompile(`^[A-Z0-9]{5}(-[A-Z0-9]{5}){4}$`)

func TestGenerateKeyFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		key, err := GenerateKey()
		require.NoError(t, err)
		assert.Regexp(t, keyFormat, key)
		assert.Len(t, key, 29)
	}
}

func TestGenerateKeyRoundTripsThroughValidation(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	normalized, err := validation.NormalizeLicenseKey(key)
	require.NoError(t, err)
	assert.Equal(t, key, normalized)
}

func TestRandomKeyCharsStayInAlphabet(t *testing.T) {
	counts := make(map[byte]int)
	for i := 0; i < 1000; i++ {
		chars, err := randomKeyChars(keyBlockCount * keyBlockSize)
		require.NoError(t, err)
		require.Len(t, chars, keyBlockCount*keyBlockSize)
		for _, ch := range chars {
			counts[ch]++
		}
	}

	for ch := range counts {
		assert.Contains(t, keyAlphabet, string(ch))
	}

	// 25k draws across 36 characters: every character should show up.
	for i := 0; i < len(keyAlphabet); i++ {
		assert.Positive(t, counts[keyAlphabet[i]], "character %c never drawn", keyAlphabet[i])
	}
}

func TestGenerateKeyUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key, err := GenerateKey()
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}
