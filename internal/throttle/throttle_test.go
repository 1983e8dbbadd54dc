package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*Limiter, *time.Time) {
	t.Helper()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(DefaultThreshold, DefaultTTL)
	l.now = func() time.Time { return now }

	return l, &now
}

func TestAllow_UnknownIdentifier(t *testing.T) {
	l, _ := newTestLimiter(t)

	assert.NoError(t, l.Allow("alice@example.com"))
}

func TestAllow_BlocksAtThreshold(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < DefaultThreshold-1; i++ {
		l.RecordFailure("alice@example.com")
		require.NoError(t, l.Allow("alice@example.com"))
	}

	l.RecordFailure("alice@example.com")

	assert.ErrorIs(t, l.Allow("alice@example.com"), ErrTooManyAttempts)
}

func TestAllow_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < DefaultThreshold; i++ {
		l.RecordFailure("alice@example.com")
	}

	assert.ErrorIs(t, l.Allow("alice@example.com"), ErrTooManyAttempts)
	assert.NoError(t, l.Allow("bob@example.com"))
}

func TestRecordSuccess_UnblocksImmediately(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < DefaultThreshold; i++ {
		l.RecordFailure("alice@example.com")
	}
	require.ErrorIs(t, l.Allow("alice@example.com"), ErrTooManyAttempts)

	l.RecordSuccess("alice@example.com")

	assert.NoError(t, l.Allow("alice@example.com"))
}

func TestRecordSuccess_UnknownIdentifierIsNoop(t *testing.T) {
	l, _ := newTestLimiter(t)

	l.RecordSuccess("nobody@example.com")

	assert.NoError(t, l.Allow("nobody@example.com"))
	assert.Empty(t, l.entries)
}

func TestSweep_RemovesEntryAfterTTL(t *testing.T) {
	l, now := newTestLimiter(t)

	l.RecordFailure("alice@example.com")
	l.RecordSuccess("alice@example.com")

	*now = now.Add(DefaultTTL - time.Second)
	assert.Equal(t, 0, l.Sweep())
	assert.Len(t, l.entries, 1)

	*now = now.Add(2 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Empty(t, l.entries)

	// Sweeping again with nothing left must be a no-op.
	assert.Equal(t, 0, l.Sweep())
}

func TestSweep_KeepsEntriesWithoutExpiry(t *testing.T) {
	l, now := newTestLimiter(t)

	l.RecordFailure("alice@example.com")

	*now = now.Add(24 * time.Hour)
	assert.Equal(t, 0, l.Sweep())
	assert.Len(t, l.entries, 1)
}

func TestAllow_DropsExpiredEntryLazily(t *testing.T) {
	l, now := newTestLimiter(t)

	l.RecordFailure("alice@example.com")
	l.RecordSuccess("alice@example.com")

	*now = now.Add(DefaultTTL + time.Minute)

	assert.NoError(t, l.Allow("alice@example.com"))
	assert.Empty(t, l.entries)
}

func TestRecordFailure_AfterSuccessStartsFresh(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < DefaultThreshold; i++ {
		l.RecordFailure("alice@example.com")
	}
	l.RecordSuccess("alice@example.com")

	l.RecordFailure("alice@example.com")

	assert.NoError(t, l.Allow("alice@example.com"))
	assert.Equal(t, 1, l.entries["alice@example.com"].failures)
}
