package sleep

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Clock is a time of day in minutes since midnight, always in [0, 1440).
type Clock int

// At returns the clock time hh:mm, wrapped into a single day.
func At(hour, minute int) Clock {
	return Clock(0).Add(hour*60 + minute)
}

// ParseClock parses a 24-hour HH:MM string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return At(t.Hour(), t.Minute()), nil
}

// Add moves c by the given number of minutes, wrapping around midnight.
func (c Clock) Add(minutes int) Clock {
	m := (int(c) + minutes) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return Clock(m)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Kitchen formats c on a 12-hour clock, e.g. "10:45 PM".
func (c Clock) Kitchen() string {
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format("3:04 PM")
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// since returns the minutes from origin forward to c.
func (c Clock) since(origin Clock) int {
	return int(Clock(0).Add(int(c) - int(origin)))
}
