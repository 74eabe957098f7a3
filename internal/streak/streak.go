// Package streak tracks consecutive study days.
//
// All comparisons happen on UTC calendar dates: a study event at 23:30 in
// UTC-5 counts toward the following UTC day. Using one zone for every user
// keeps streaks stable across DST changes and server moves.
package streak

import "time"

// Date truncates t to its UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// Update returns the streak after studying on today, given the previous
// study date and the stored current streak. increased reports whether the
// streak moved (including a reset to a fresh streak of 1).
func Update(lastStudyDate, today time.Time, current int) (newCurrent int, increased bool) {
	if lastStudyDate.IsZero() {
		return 1, true
	}
	switch gap := DaysBetween(lastStudyDate, today); {
	case gap <= 0:
		// Already studied today, or the clock went backwards.
		if current < 1 {
			return 1, true
		}
		return current, false
	case gap == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

// Best returns the best streak after observing current.
func Best(best, current int) int {
	if current > best {
		return current
	}
	return best
}

// Effective returns the streak as it stands on today: the stored value
// while it is still alive, 0 once a day was missed.
func Effective(current int, lastStudyDate, today time.Time) int {
	if lastStudyDate.IsZero() || DaysBetween(lastStudyDate, today) > 1 {
		return 0
	}
	return current
}

// AtRisk reports whether the user studied yesterday but not yet today,
// so the streak ends unless they study before the day is over.
func AtRisk(lastStudyDate, today time.Time) bool {
	return !lastStudyDate.IsZero() && DaysBetween(lastStudyDate, today) == 1
}
