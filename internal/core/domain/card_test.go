package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/centavoapp/centavo/internal/core/domain"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestStatusAt_PaidIsSticky(t *testing.T) {
	card := domain.Card{DueDay: 15, Paid: true}

	// Paid wins on every calendar day.
	for _, d := range []int{1, 8, 9, 15, 16, 28} {
		assert.Equal(t, domain.CardPaid, card.StatusAt(at(2026, time.March, d)), "day %d", d)
	}

	card.Paid = false
	assert.NotEqual(t, domain.CardPaid, card.StatusAt(at(2026, time.March, 1)))
}

func TestStatusAt_MidMonthDueDay(t *testing.T) {
	// Due day 15 closes on the 9th: open before closing, closed between
	// closing and due day, due afterwards.
	card := domain.Card{DueDay: 15}

	assert.Equal(t, domain.CardOpen, card.StatusAt(at(2026, time.March, 1)))
	assert.Equal(t, domain.CardOpen, card.StatusAt(at(2026, time.March, 8)))
	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 9)))
	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 15)))
	assert.Equal(t, domain.CardDue, card.StatusAt(at(2026, time.March, 16)))
	assert.Equal(t, domain.CardDue, card.StatusAt(at(2026, time.March, 31)))
}

func TestStatusAt_EarlyDueDayClosesPreviousMonth(t *testing.T) {
	// Due day 3 closes on the 25th of the previous month. Days one through
	// three await payment of the statement closed last month; past the due
	// day the unpaid statement is overdue until the next one closes.
	card := domain.Card{DueDay: 3}

	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 1)))
	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 3)))
	assert.Equal(t, domain.CardDue, card.StatusAt(at(2026, time.March, 4)))
	assert.Equal(t, domain.CardDue, card.StatusAt(at(2026, time.March, 24)))
	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 25)))
	assert.Equal(t, domain.CardClosed, card.StatusAt(at(2026, time.March, 31)))
}
