package calendar

import (
	"fmt"
	"time"

	"github.com/Leganyst/clinic-desk/internal/model"
)

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Часы приёма. Время прихода вне смен относится к ближайшей.
const (
	morningStart   = 8 * time.Hour
	morningEnd     = 12 * time.Hour
	afternoonStart = 13*time.Hour + 30*time.Minute
	afternoonEnd   = 17*time.Hour + 30*time.Minute
)

// ShiftWindow возвращает часы смены для даты day в поясе loc.
func ShiftWindow(day time.Time, shift model.ShiftSlot, loc *time.Location) (TimeRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch shift {
	case model.ShiftMorning:
		return TimeRange{Start: midnight.Add(morningStart), End: midnight.Add(morningEnd)}, nil
	case model.ShiftAfternoon:
		return TimeRange{Start: midnight.Add(afternoonStart), End: midnight.Add(afternoonEnd)}, nil
	default:
		return TimeRange{}, fmt.Errorf("unknown shift %q", shift)
	}
}

// ShiftOf относит время прихода (смещение от полуночи) к смене.
func ShiftOf(clock time.Duration) model.ShiftSlot {
	// Обеденный перерыв делим пополам.
	if clock < (morningEnd+afternoonStart)/2 {
		return model.ShiftMorning
	}
	return model.ShiftAfternoon
}

// FormatShift форматирует смену в человекочитаемую строку:
// "Mon 2024-06-01 Morning 08:00–12:00 (room 101)".
func FormatShift(day time.Time, shift model.ShiftSlot, roomNo string) string {
	tr, err := ShiftWindow(day, shift, time.UTC)
	if err != nil {
		return fmt.Sprintf("%s %s", day.Format(DateLayout), shift)
	}
	base := fmt.Sprintf("%s %s %s %s–%s",
		tr.Start.Weekday().String()[:3],
		tr.Start.Format(DateLayout),
		shift,
		tr.Start.Format(ClockLayout),
		tr.End.Format(ClockLayout),
	)
	if roomNo != "" {
		return fmt.Sprintf("%s (room %s)", base, roomNo)
	}
	return base
}
