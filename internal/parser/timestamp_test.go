package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoggerTimestamp(t *testing.T) {
	t.Run("valid logger timestamp", func(t *testing.T) {
		// Record code / day / month / month repeated / year / time.
		got, ok := parseLoggerTimestamp("01/05/12/12/2025/ 10:30:45")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 5, 10, 30, 45, 0, time.Local), got)
	})

	t.Run("tolerates missing space before time", func(t *testing.T) {
		got, ok := parseLoggerTimestamp("01/05/12/12/2025/10:30:45")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 5, 10, 30, 45, 0, time.Local), got)
	})

	t.Run("invalid calendar date is rejected, not normalized", func(t *testing.T) {
		_, ok := parseLoggerTimestamp("01/32/13/13/2025/ 10:30:45")
		assert.False(t, ok)
	})

	t.Run("pattern mismatch", func(t *testing.T) {
		for _, raw := range []string{"", "2025-12-05 10:30:45", "garbage", "05/12/2025 10:30"} {
			_, ok := parseLoggerTimestamp(raw)
			assert.False(t, ok, "raw %q", raw)
		}
	})
}
