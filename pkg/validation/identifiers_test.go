package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLicenseKey(t *testing.T) {
	t.Run("accepts canonical keys", func(t *testing.T) {
		key, err := NormalizeLicenseKey("AAAAA-BBBBB-CCCCC-DDDDD-EEEEE")
		require.NoError(t, err)
		assert.Equal(t, "AAAAA-BBBBB-CCCCC-DDDDD-EEEEE", key)
	})

	t.Run("uppercases and trims input", func(t *testing.T) {
		key, err := NormalizeLicenseKey("  aaaaa-bbbbb-ccccc-ddddd-12345 ")
		require.NoError(t, err)
		assert.Equal(t, "AAAAA-BBBBB-CCCCC-DDDDD-12345", key)
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, input := range []string{
			"",
			"AAAAA",
			"AAAAA-BBBBB-CCCCC-DDDDD",
			"AAAAA-BBBBB-CCCCC-DDDDD-EEEE",
			"AAAAA-BBBBB-CCCCC-DDDDD-EEEEE-FFFFF",
			"AAAA!-BBBBB-CCCCC-DDDDD-EEEEE",
			"AAAAA_BBBBB_CCCCC_DDDDD_EEEEE",
		} {
			_, err := NormalizeLicenseKey(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}
