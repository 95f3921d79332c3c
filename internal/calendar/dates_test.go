package calendar

import (
	"errors"
	"testing"
	"time"
)

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

//
// NormalizeDateRange
//

func TestNormalizeDateRange_SwappedBounds(t *testing.T) {
	start := mustTime(t, 2024, 6, 10, 15, 0)
	end := mustTime(t, 2024, 6, 1, 9, 0)

	r, err := NormalizeDateRange(start, end, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !r.Start.Equal(Date(2024, 6, 1)) || !r.End.Equal(Date(2024, 6, 10)) {
		t.Fatalf("expected 2024-06-01..2024-06-10, got %v..%v", r.Start, r.End)
	}
}

func TestNormalizeDateRange_TooLong(t *testing.T) {
	_, err := NormalizeDateRange(Date(2024, 1, 1), Date(2024, 1, 31), 30)
	if !errors.Is(err, ErrDateRangeTooLong) {
		t.Fatalf("expected ErrDateRangeTooLong, got %v", err)
	}

	if _, err := NormalizeDateRange(Date(2024, 1, 1), Date(2024, 1, 30), 30); err != nil {
		t.Fatalf("30 days must fit, got %v", err)
	}
}

func TestNormalizeDateRange_Zero(t *testing.T) {
	if _, err := NormalizeDateRange(time.Time{}, Date(2024, 1, 1), 0); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestDateRange_BoundsIncludeWholeEndDay(t *testing.T) {
	r := DateRange{Start: Date(2024, 6, 1), End: Date(2024, 6, 1)}
	from, to := r.Bounds()

	if !from.Equal(Date(2024, 6, 1)) {
		t.Fatalf("from = %v", from)
	}
	if !to.Equal(Date(2024, 6, 2)) {
		t.Fatalf("to = %v, want next midnight", to)
	}
	if Days(r.Start, r.End) != 1 {
		t.Fatalf("single-day range must count as 1 day")
	}
}

func TestToday_UsesClinicTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 2024-05-31 20:00 UTC == 2024-06-01 04:00 в UTC+8.
	now := mustTime(t, 2024, 5, 31, 20, 0)

	if got := Today(now, loc); !got.Equal(Date(2024, 6, 1)) {
		t.Fatalf("Today = %v, want 2024-06-01", got)
	}
	if !NotBefore(Date(2024, 6, 1), now, loc) {
		t.Fatalf("today must not be in the past")
	}
	if NotBefore(Date(2024, 5, 31), now, loc) {
		t.Fatalf("yesterday must be in the past")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-06-01 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(Date(2024, 6, 1)) {
		t.Fatalf("got %v", d)
	}
	if _, err := ParseDate("01.06.2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]time.Duration{
		"09:05":    9*time.Hour + 5*time.Minute,
		"14:30:15": 14*time.Hour + 30*time.Minute + 15*time.Second,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseClock("25:00"); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

func TestMonthToDate(t *testing.T) {
	r := MonthToDate(mustTime(t, 2024, 6, 17, 11, 0))
	if !r.Start.Equal(Date(2024, 6, 1)) || !r.End.Equal(Date(2024, 6, 17)) {
		t.Fatalf("got %v..%v", r.Start, r.End)
	}
}

func TestDateRange_BoundsInClinicZone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	r := DateRange{Start: Date(2024, 6, 1), End: Date(2024, 6, 1)}

	from, to := r.BoundsIn(loc)
	if want := time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Fatalf("from = %v, want %v", from, want)
	}
	if want := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC); !to.Equal(want) {
		t.Fatalf("to = %v, want %v", to, want)
	}

	from, to = r.BoundsIn(nil)
	if !from.Equal(Date(2024, 6, 1)) || !to.Equal(Date(2024, 6, 2)) {
		t.Fatalf("nil loc: got %v..%v", from, to)
	}
}
