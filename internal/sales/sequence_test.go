package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextNumberIncrementsDailySequence(t *testing.T) {
	existing := []string{"INV-250115-001", "INV-250115-002"}
	require.Equal(t, "INV-250115-003", NextNumber(existing, day("2025-01-15")))
}

func TestNextNumberStartsAtOne(t *testing.T) {
	require.Equal(t, "INV-250115-001", NextNumber(nil, day("2025-01-15")))

	// Numbers from other days do not count.
	existing := []string{"INV-250114-007", "INV-250113-002"}
	require.Equal(t, "INV-250115-001", NextNumber(existing, day("2025-01-15")))
}

func TestNextNumberSkipsMalformedSuffixes(t *testing.T) {
	existing := []string{"INV-250115-ABC", "INV-250115-002", "INV-250115-"}
	require.Equal(t, "INV-250115-003", NextNumber(existing, day("2025-01-15")))

	// Only malformed numbers for today: sequence starts fresh instead of
	// failing or colliding at zero.
	existing = []string{"INV-250115-XYZ"}
	require.Equal(t, "INV-250115-001", NextNumber(existing, day("2025-01-15")))
}

func TestNextNumberToleratesWideSequences(t *testing.T) {
	existing := []string{"INV-250115-099", "INV-250115-100"}
	require.Equal(t, "INV-250115-101", NextNumber(existing, day("2025-01-15")))
}
