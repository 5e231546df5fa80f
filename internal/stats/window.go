// Package stats implements the statistics aggregation core: calendar-month
// window arithmetic, transaction aggregation, and the report shapes served
// by the statistics endpoints. Everything in this package is pure — callers
// supply the transaction records and the current date, and no function here
// touches the database or the system clock.
package stats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	apperrors "expensely/internal/errors"
)

const monthLabelLayout = "2006-01"

// MonthWindow is a single calendar-month date range. The window covering
// today's month is truncated so End equals today; all other windows span
// the full month. Windows are derived on demand and never persisted.
type MonthWindow struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Label     string    `json:"label"`
	IsCurrent bool      `json:"is_current"`
}

// Contains reports whether the given date falls within the window,
// inclusive on both ends. Time-of-day is ignored.
func (w MonthWindow) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// DateOf strips the time-of-day component, keeping the calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Windows returns count month windows ending at today's month, ordered
// oldest first. The most recent window is the current partial month
// (End == today); earlier windows cover their full month. Month indices
// roll back across year boundaries, so a six-window request in February
// reaches into the previous year.
func Windows(today time.Time, count int) []MonthWindow {
	today = DateOf(today)
	year, month := today.Year(), int(today.Month())

	windows := make([]MonthWindow, 0, count)
	for i := 0; i < count; i++ {
		y, m := year, month-i
		for m <= 0 {
			m += 12
			y--
		}
		w := monthWindow(y, m, today)
		windows = append(windows, w)
	}

	// Generated newest-first; charts read left to right, so flip.
	for i, j := 0, len(windows)-1; i < j; i, j = i+1, j-1 {
		windows[i], windows[j] = windows[j], windows[i]
	}
	return windows
}

// WindowForMonth returns the single window for an explicit "YYYY-MM"
// selector. If the label names today's month the window is truncated to
// today, otherwise it covers the full month. Returns ErrInvalidMonthFormat
// when the label does not parse as an integer year and a month in 1-12.
func WindowForMonth(label string, today time.Time) (MonthWindow, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return MonthWindow{}, apperrors.ErrInvalidMonthFormat
	}
	year, yearErr := strconv.Atoi(parts[0])
	month, monthErr := strconv.Atoi(parts[1])
	if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
		return MonthWindow{}, apperrors.ErrInvalidMonthFormat
	}

	return monthWindow(year, month, DateOf(today)), nil
}

func monthWindow(year, month int, today time.Time) MonthWindow {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, today.Location())
	w := MonthWindow{
		Start: start,
		Label: fmt.Sprintf("%04d-%02d", year, month),
	}
	if year == today.Year() && time.Month(month) == today.Month() {
		w.End = today
		w.IsCurrent = true
	} else {
		// End of month via the first-of-next-month rollover inside
		// jinzhu/now; handles 28/29/30/31-day months uniformly.
		w.End = DateOf(now.New(start).EndOfMonth())
	}
	return w
}

// CurrentMonthWindow is shorthand for the partial window of today's month.
func CurrentMonthWindow(today time.Time) MonthWindow {
	today = DateOf(today)
	return monthWindow(today.Year(), int(today.Month()), today)
}
