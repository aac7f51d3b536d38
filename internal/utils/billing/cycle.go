// Package billing resolves which monthly statement a card purchase belongs to
// and advances installment dates across months.
package billing

import "time"

// DefaultClosingOffset is the number of days between a card's statement
// closing day and its payment due day.
const DefaultClosingOffset = 6

// ClosingDay returns the day-of-month on which the statement preceding the
// given due day closes, for the month containing ref. When dueDay-offset is
// not positive the closing day falls in the previous month and is expressed
// as a day number of that month (e.g. due day 3 closes on the 28th).
func ClosingDay(dueDay, offset int, ref time.Time) int {
	day := dueDay - offset
	if day <= 0 {
		day += lastDayOfPreviousMonth(ref)
	}
	return day
}

// CycleFor returns the (month, year) of the statement a purchase on date
// belongs to, for a card with the given due day, using the default closing
// offset. Purchases on or after the closing day roll to the next cycle.
func CycleFor(dueDay int, date time.Time) (time.Month, int) {
	return CycleForWithOffset(dueDay, DefaultClosingOffset, date)
}

// CycleForWithOffset is CycleFor with an explicit closing-to-due offset.
func CycleForWithOffset(dueDay, offset int, date time.Time) (time.Month, int) {
	closing := ClosingDay(dueDay, offset, date)
	if date.Day() >= closing {
		next := date.AddDate(0, 0, daysInMonth(date.Year(), date.Month())-date.Day()+1)
		return next.Month(), next.Year()
	}
	return date.Month(), date.Year()
}

// AddMonthsClamped advances t by the given number of months keeping the same
// day-of-month, clamped to the last day of the target month when the day does
// not exist there (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, months, 0)
	if max := daysInMonth(target.Year(), target.Month()); d > max {
		d = max
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func lastDayOfPreviousMonth(ref time.Time) int {
	return time.Date(ref.Year(), ref.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}
