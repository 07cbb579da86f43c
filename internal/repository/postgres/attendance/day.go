package attendance

import (
	"time"

	"foodzippy/backend/internal/entity"
)

// NormalizeDay truncates t to the start of its calendar day. The result is
// the day bucket that keys the one-session-per-day constraint.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DurationMinutes is the session length in whole minutes, zero while the
// session is still open.
func DurationMinutes(checkIn time.Time, checkOut *time.Time) int {
	if checkOut == nil {
		return 0
	}
	d := checkOut.Sub(checkIn)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}

// DeriveStatus classifies a session: Present at or above the full-day
// threshold, Half-Day below it, empty while no check-out exists.
func DeriveStatus(checkIn time.Time, checkOut *time.Time, fullDayMinutes int) string {
	if checkOut == nil {
		return ""
	}
	if DurationMinutes(checkIn, checkOut) >= fullDayMinutes {
		return entity.AttendancePresent
	}
	return entity.AttendanceHalfDay
}

// RangeDefault selects the fallback window when neither month/year nor an
// explicit date range is supplied.
type RangeDefault int

const (
	// DefaultCurrentMonth is used by the self and fleet-wide views.
	DefaultCurrentMonth RangeDefault = iota
	// DefaultTrailing30Days is used by the admin-viewing-one-agent view.
	DefaultTrailing30Days
)

// RangeFilter is the shared date-window selector for every list and report
// operation.
type RangeFilter struct {
	Month     *int
	Year      *int
	StartDate *time.Time
	EndDate   *time.Time
}

// ResolveRange applies the shared range policy: month+year selects the
// first through last calendar day of that month end-of-day inclusive;
// otherwise an explicit start/end pair is used verbatim; otherwise the
// given default window anchored at now.
func ResolveRange(f RangeFilter, def RangeDefault, now time.Time) (time.Time, time.Time) {
	if f.Month != nil && f.Year != nil {
		start := time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return start, end
	}

	if f.StartDate != nil && f.EndDate != nil {
		return *f.StartDate, *f.EndDate
	}

	if def == DefaultTrailing30Days {
		return NormalizeDay(now.AddDate(0, 0, -30)), now
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Statistics is the per-person aggregate over a date range.
type Statistics struct {
	TotalDays   int `json:"totalDays"`
	PresentDays int `json:"presentDays"`
	HalfDays    int `json:"halfDays"`
	AvgDuration int `json:"avgDuration"`
	TotalHours  int `json:"totalHours"`
}

// ComputeStatistics derives the aggregate from the records themselves, so
// the numbers can never drift from the stored sessions.
func ComputeStatistics(list []entity.AgentAttendance, fullDayMinutes int) Statistics {
	var stats Statistics
	totalMinutes := 0

	for _, a := range list {
		stats.TotalDays++
		totalMinutes += DurationMinutes(a.CheckIn, a.CheckOut)

		switch DeriveStatus(a.CheckIn, a.CheckOut, fullDayMinutes) {
		case entity.AttendancePresent:
			stats.PresentDays++
		case entity.AttendanceHalfDay:
			stats.HalfDays++
		}
	}

	if stats.TotalDays > 0 {
		stats.AvgDuration = totalMinutes / stats.TotalDays
	}
	stats.TotalHours = totalMinutes / 60

	return stats
}
