// Package attendance holds the presentation rules for schedules,
// journals and attendance statistics.
package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// DateLayout is how journal dates are shown.
const DateLayout = "02.01.2006"

// ClockLayout is how times of day are shown.
const ClockLayout = "15:04"

// wireLayout matches what the backend expects for schedule times.
const wireLayout = "2006-01-02T15:04:05.000Z"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts the timestamp shapes the backend and users produce.
// Values without zone are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInputInvalid, fmt.Sprintf("unrecognized time %q", s)).
		WithSuggestion("Use YYYY-MM-DDTHH:MM, e.g. 2024-05-01T08:00")
}

// WireTime formats t the way schedule requests carry it.
func WireTime(t time.Time) string {
	return t.UTC().Format(wireLayout)
}

// FormatDate renders a backend timestamp as dd.mm.yyyy, or returns it
// unchanged when it cannot be parsed.
func FormatDate(s string, loc *time.Location) string {
	t, err := ParseTime(s, loc)
	if err != nil {
		return s
	}
	return t.In(loc).Format(DateLayout)
}

// FormatClock renders a backend timestamp as HH:MM, or "" when it cannot
// be parsed.
func FormatClock(s string, loc *time.Location) string {
	t, err := ParseTime(s, loc)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(ClockLayout)
}

// FormatRange renders "08:00–09:30".
func FormatRange(start, end string, loc *time.Location) string {
	return FormatClock(start, loc) + "–" + FormatClock(end, loc)
}

// ValidateWindow requires start to be strictly before end.
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return errors.New(errors.ErrCodeInputInvalid, "start time must be before end time")
	}
	return nil
}

// Slot is a suggested one-hour class window.
type Slot struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// FirstSlotHour and LastSlotHour bound the suggested slots.
const (
	FirstSlotHour = 8
	LastSlotHour  = 18
)

// Slots returns the hourly windows 08:00–09:00 through 17:00–18:00.
func Slots() []Slot {
	slots := make([]Slot, 0, LastSlotHour-FirstSlotHour)
	for hour := FirstSlotHour; hour < LastSlotHour; hour++ {
		slots = append(slots, Slot{
			Start: fmt.Sprintf("%02d:00", hour),
			End:   fmt.Sprintf("%02d:00", hour+1),
		})
	}
	return slots
}

// On places the slot on day's date.
func (s Slot) On(day time.Time) (time.Time, time.Time, error) {
	start, err := atClock(day, s.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atClock(day, s.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// FindSlot returns the suggested slot starting at clock ("09:00").
func FindSlot(clock string) (Slot, bool) {
	for _, s := range Slots() {
		if s.Start == clock {
			return s, true
		}
	}
	return Slot{}, false
}

func atClock(day time.Time, clock string) (time.Time, error) {
	h, m, ok := strings.Cut(clock, ":")
	hour, errH := strconv.Atoi(h)
	minute, errM := strconv.Atoi(m)
	if !ok || errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, errors.New(errors.ErrCodeInputInvalid, fmt.Sprintf("invalid time of day %q", clock))
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, day.Location()), nil
}
