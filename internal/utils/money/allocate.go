// Package money splits monetary totals into exact-cent parts.
package money

import (
	"fmt"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Allocate splits total into n positive parts rounded to the cent whose sum
// reconstructs total exactly. The division remainder is distributed as one
// extra cent to the first remainder positions, so the result is deterministic
// and front-loaded: Allocate(100.00, 7) = 4x14.29 followed by 3x14.28.
//
// Totals carrying more than two fractional digits are rounded half-up to the
// cent before splitting. All arithmetic is performed on whole cents.
func Allocate(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1, got %d", apperrors.ErrValidation, n)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total must be positive, got %s", apperrors.ErrValidation, total)
	}

	totalCents := total.Round(2).Shift(2).IntPart()
	if totalCents < int64(n) {
		return nil, fmt.Errorf("%w: total %s cannot be split into %d positive parts", apperrors.ErrValidation, total, n)
	}

	base := totalCents / int64(n)
	remainder := totalCents - base*int64(n)

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		parts[i] = decimal.New(cents, -2)
	}
	return parts, nil
}

// Sum adds a slice of amounts. Mostly useful for asserting the allocation
// invariant in callers and tests.
func Sum(parts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p)
	}
	return total
}
