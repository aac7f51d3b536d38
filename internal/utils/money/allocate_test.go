package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/utils/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocate_ExactDivision(t *testing.T) {
	parts, err := money.Allocate(dec("1200.00"), 6)
	require.NoError(t, err)
	require.Len(t, parts, 6)

	for _, p := range parts {
		assert.True(t, p.Equal(dec("200.00")), "expected 200.00, got %s", p)
	}
	assert.True(t, money.Sum(parts).Equal(dec("1200.00")))
}

func TestAllocate_RemainderFrontLoaded(t *testing.T) {
	// 10000 cents / 7 = 1428 cents base, remainder 4: the first four parts
	// carry the extra cent.
	parts, err := money.Allocate(dec("100.00"), 7)
	require.NoError(t, err)
	require.Len(t, parts, 7)

	for i := 0; i < 4; i++ {
		assert.True(t, parts[i].Equal(dec("14.29")), "part %d: got %s", i, parts[i])
	}
	for i := 4; i < 7; i++ {
		assert.True(t, parts[i].Equal(dec("14.28")), "part %d: got %s", i, parts[i])
	}
	assert.True(t, money.Sum(parts).Equal(dec("100.00")))
}

func TestAllocate_SumAlwaysReconstructsTotal(t *testing.T) {
	totals := []string{"0.03", "1.00", "9.99", "33.33", "100.01", "2500.55", "99999.97"}
	for _, total := range totals {
		for n := 1; n <= 12; n++ {
			parts, err := money.Allocate(dec(total), n)
			if err != nil {
				continue // totals too small for n positive parts are rejected
			}
			assert.True(t, money.Sum(parts).Equal(dec(total)),
				"total %s split %d ways: sum %s", total, n, money.Sum(parts))
			for _, p := range parts {
				assert.True(t, p.IsPositive(), "total %s split %d ways produced non-positive part %s", total, n, p)
			}
		}
	}
}

func TestAllocate_SinglePart(t *testing.T) {
	parts, err := money.Allocate(dec("42.50"), 1)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.True(t, parts[0].Equal(dec("42.50")))
}

func TestAllocate_RoundsTotalToCents(t *testing.T) {
	// Half-up rounding before splitting: 10.005 becomes 10.01.
	parts, err := money.Allocate(dec("10.005"), 2)
	require.NoError(t, err)
	assert.True(t, money.Sum(parts).Equal(dec("10.01")))
	assert.True(t, parts[0].Equal(dec("5.01")))
	assert.True(t, parts[1].Equal(dec("5.00")))
}

func TestAllocate_RejectsInvalidInput(t *testing.T) {
	_, err := money.Allocate(dec("10.00"), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = money.Allocate(dec("0"), 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = money.Allocate(dec("-5.00"), 2)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// 0.02 cannot be split into three positive cent parts.
	_, err = money.Allocate(dec("0.02"), 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
