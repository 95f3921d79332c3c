package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidClock     = errors.New("invalid time of day")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrDateRangeTooLong = errors.New("date range too long")
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Date — календарная дата, нормализованная к полуночи UTC.
// Так её одинаково хранят все диалекты, независимо от пояса клиники.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf берёт год/месяц/день t в его собственном поясе.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today возвращает "сегодня" в поясе клиники loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return DateOf(now)
}

// NotBefore reports whether day (a Date) is today or later in loc.
func NotBefore(day, now time.Time, loc *time.Location) bool {
	return !DateOf(day).Before(Today(now, loc))
}

// ParseDate разбирает "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// ParseClock разбирает время прихода "HH:MM" (секунды допускаются).
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// DateRange — включительный интервал дат [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NormalizeDateRange нормализует интервал:
//   - меняет местами границы, если они перепутаны;
//   - отбрасывает время суток;
//   - при maxDays > 0 отклоняет интервалы длиннее maxDays дней.
func NormalizeDateRange(start, end time.Time, maxDays int) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}

	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		start, end = end, start
	}

	if maxDays > 0 && Days(start, end) > maxDays {
		return DateRange{}, fmt.Errorf("%w: more than %d days", ErrDateRangeTooLong, maxDays)
	}

	return DateRange{Start: start, End: end}, nil
}

// Bounds возвращает полуоткрытый интервал [Start 00:00, End+1 00:00) для фильтра по timestamp.
func (r DateRange) Bounds() (from, to time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

// BoundsIn — те же границы, но полночи берутся в поясе loc.
// Результат сравнивается с моментами времени, хранимыми в UTC.
func (r DateRange) BoundsIn(loc *time.Location) (from, to time.Time) {
	if loc == nil {
		return r.Bounds()
	}
	end := r.End.AddDate(0, 0, 1)
	from = time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, loc)
	to = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	return from.UTC(), to.UTC()
}

// Days — количество дат в интервале, включая обе границы.
func Days(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours()/24) + 1
}

// MonthToDate — интервал с первого числа месяца по today включительно.
func MonthToDate(today time.Time) DateRange {
	today = DateOf(today)
	return DateRange{Start: Date(today.Year(), today.Month(), 1), End: today}
}
