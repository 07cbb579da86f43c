package attendance

import (
	"testing"
	"time"

	"foodzippy/backend/internal/entity"
)

const fullDay = 480

func timePtr(t time.Time) *time.Time { return &t }

func TestNormalizeDay(t *testing.T) {
	in := time.Date(2025, time.April, 7, 18, 45, 12, 999, time.UTC)
	got := NormalizeDay(in)
	want := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeDay() = %v, want %v", got, want)
	}
}

func TestDurationMinutes(t *testing.T) {
	checkIn := time.Date(2025, time.April, 7, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut *time.Time
		want     int
	}{
		{"open session", nil, 0},
		{"nine hours", timePtr(checkIn.Add(9 * time.Hour)), 540},
		{"partial minute floors", timePtr(checkIn.Add(2*time.Minute + 30*time.Second)), 2},
		{"clock skew clamps to zero", timePtr(checkIn.Add(-time.Hour)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMinutes(checkIn, tt.checkOut); got != tt.want {
				t.Errorf("DurationMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	checkIn := time.Date(2025, time.April, 7, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut *time.Time
		want     string
	}{
		{"open session has no status", nil, ""},
		{"nine hours is present", timePtr(checkIn.Add(9 * time.Hour)), entity.AttendancePresent},
		{"exactly the threshold is present", timePtr(checkIn.Add(8 * time.Hour)), entity.AttendancePresent},
		{"four hours is half day", timePtr(checkIn.Add(4 * time.Hour)), entity.AttendanceHalfDay},
		{"one minute short is half day", timePtr(checkIn.Add(8*time.Hour - time.Minute)), entity.AttendanceHalfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(checkIn, tt.checkOut, fullDay); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRangeMonthYear(t *testing.T) {
	month, year := 3, 2024
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end := ResolveRange(RangeFilter{Month: &month, Year: &year}, DefaultCurrentMonth, now)

	wantStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestResolveRangeExplicitDates(t *testing.T) {
	from := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 20, 23, 59, 59, 0, time.UTC)
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end := ResolveRange(RangeFilter{StartDate: &from, EndDate: &to}, DefaultCurrentMonth, now)
	if !start.Equal(from) || !end.Equal(to) {
		t.Errorf("got [%v, %v], want [%v, %v]", start, end, from, to)
	}
}

func TestResolveRangeDefaults(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end := ResolveRange(RangeFilter{}, DefaultCurrentMonth, now)
	if !start.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("current month start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("current month end = %v", end)
	}

	start, end = ResolveRange(RangeFilter{}, DefaultTrailing30Days, now)
	if !start.Equal(time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("trailing start = %v", start)
	}
	if !end.Equal(now) {
		t.Errorf("trailing end = %v, want now", end)
	}
}

func TestComputeStatistics(t *testing.T) {
	day := func(d int, minutes int) entity.AgentAttendance {
		checkIn := time.Date(2025, time.June, d, 9, 0, 0, 0, time.UTC)
		var out *time.Time
		if minutes > 0 {
			out = timePtr(checkIn.Add(time.Duration(minutes) * time.Minute))
		}
		return entity.AgentAttendance{
			WorkDay:  NormalizeDay(checkIn),
			CheckIn:  checkIn,
			CheckOut: out,
		}
	}

	list := []entity.AgentAttendance{
		day(2, 540), // present
		day(3, 480), // present, exactly the threshold
		day(4, 200), // half day
		day(5, 0),   // still open
	}

	stats := ComputeStatistics(list, fullDay)

	if stats.TotalDays != 4 {
		t.Errorf("TotalDays = %d, want 4", stats.TotalDays)
	}
	if stats.PresentDays != 2 {
		t.Errorf("PresentDays = %d, want 2", stats.PresentDays)
	}
	if stats.HalfDays != 1 {
		t.Errorf("HalfDays = %d, want 1", stats.HalfDays)
	}
	// 1220 total minutes over 4 days, integer math throughout
	if stats.AvgDuration != 305 {
		t.Errorf("AvgDuration = %d, want 305", stats.AvgDuration)
	}
	if stats.TotalHours != 20 {
		t.Errorf("TotalHours = %d, want 20", stats.TotalHours)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, fullDay)
	if stats != (Statistics{}) {
		t.Errorf("stats over nothing = %+v, want zero", stats)
	}
}
