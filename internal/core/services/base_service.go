// Package services implements the application core: entity lifecycle, the
// balance-consistency engine, installment generation and reporting.
package services

import (
	"errors"
	"strings"

	"github.com/centavoapp/centavo/internal/apperrors"
)

// cacheKey builds a structured cache key "entity:owner:part:part...".
// Invalidation uses the "entity:owner" prefix so one owner's mutations never
// evict another owner's entries.
func cacheKey(entity, userID string, parts ...string) string {
	b := strings.Builder{}
	b.WriteString(entity)
	b.WriteByte(':')
	b.WriteString(userID)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// cachePrefix is the invalidation prefix covering every list entry of one
// entity for one owner.
func cachePrefix(entity, userID string) string {
	return entity + ":" + userID
}

// errorsIsDuplicate keeps duplicate-key noise out of the error logs; the
// conflict is expected, user-actionable behavior.
func errorsIsDuplicate(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicate)
}
