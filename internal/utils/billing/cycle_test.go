package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/centavoapp/centavo/internal/utils/billing"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClosingDay_SameMonth(t *testing.T) {
	// Due day 15 closes on the 9th regardless of month length.
	assert.Equal(t, 9, billing.ClosingDay(15, billing.DefaultClosingOffset, day(2026, time.March, 1)))
	assert.Equal(t, 9, billing.ClosingDay(15, billing.DefaultClosingOffset, day(2026, time.February, 20)))
}

func TestClosingDay_WrapsToPreviousMonth(t *testing.T) {
	// Due day 3 in March: 3-6 = -3, so the statement closes 3 days before the
	// end of February.
	assert.Equal(t, 25, billing.ClosingDay(3, billing.DefaultClosingOffset, day(2026, time.March, 10)))
	// Leap year February behind March.
	assert.Equal(t, 26, billing.ClosingDay(3, billing.DefaultClosingOffset, day(2024, time.March, 10)))
}

func TestCycleFor_ClosingBoundary(t *testing.T) {
	// Due day 15, closing day 9: the 8th still belongs to the current
	// statement, the 9th already rolls to the next one.
	m, y := billing.CycleFor(15, day(2026, time.March, 8))
	assert.Equal(t, time.March, m)
	assert.Equal(t, 2026, y)

	m, y = billing.CycleFor(15, day(2026, time.March, 9))
	assert.Equal(t, time.April, m)
	assert.Equal(t, 2026, y)
}

func TestCycleFor_YearRollover(t *testing.T) {
	m, y := billing.CycleFor(15, day(2026, time.December, 20))
	assert.Equal(t, time.January, m)
	assert.Equal(t, 2027, y)
}

func TestAddMonthsClamped_KeepsDay(t *testing.T) {
	got := billing.AddMonthsClamped(day(2026, time.March, 15), 2)
	assert.Equal(t, day(2026, time.May, 15), got)
}

func TestAddMonthsClamped_ClampsToMonthEnd(t *testing.T) {
	got := billing.AddMonthsClamped(day(2026, time.January, 31), 1)
	assert.Equal(t, day(2026, time.February, 28), got)

	// Leap year.
	got = billing.AddMonthsClamped(day(2024, time.January, 31), 1)
	assert.Equal(t, day(2024, time.February, 29), got)

	// Clamping does not stick: two months out of Jan 31 is March 31.
	got = billing.AddMonthsClamped(day(2026, time.January, 31), 2)
	assert.Equal(t, day(2026, time.March, 31), got)
}

func TestAddMonthsClamped_YearRollover(t *testing.T) {
	got := billing.AddMonthsClamped(day(2026, time.November, 30), 3)
	assert.Equal(t, day(2027, time.February, 28), got)
}
