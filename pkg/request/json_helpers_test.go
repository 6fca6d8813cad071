package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRFC3339Ptr(t *testing.T) {
	value := "2026-08-01T12:30:00Z"
	padded := "  2026-08-01T12:30:00Z  "
	empty := ""
	invalid := "01-08-2026"

	t.Run("nil input", func(t *testing.T) {
		parsed, err := ParseRFC3339Ptr(nil)
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("empty string", func(t *testing.T) {
		parsed, err := ParseRFC3339Ptr(&empty)
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("valid timestamp", func(t *testing.T) {
		parsed, err := ParseRFC3339Ptr(&value)
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		parsed, err := ParseRFC3339Ptr(&padded)
		require.NoError(t, err)
		require.NotNil(t, parsed)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseRFC3339Ptr(&invalid)
		assert.Error(t, err)
	})
}
