// Package prayer models the five daily prayer times and fetches them from
// the Aladhan API.
package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Name identifies one of the five daily prayers.
type Name string

const (
	Fajr    Name = "fajr"
	Dhuhr   Name = "dhuhr"
	Asr     Name = "asr"
	Maghrib Name = "maghrib"
	Isha    Name = "isha"
)

// Names lists the five prayers in their canonical daily order.
var Names = [5]Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// TimeOfDay is a wall-clock time expressed as minutes since local midnight.
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour "HH:MM" string. The Aladhan API sometimes
// appends the timezone in parentheses ("05:32 (CEST)"), which is ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if idx := strings.IndexByte(s, ' '); idx != -1 {
		s = s[:idx]
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("time %q not in HH:MM format", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("time %q has invalid hour", s)
	}
	min, err := strconv.Atoi(mm)
	if err != nil || min < 0 || min > 59 {
		return 0, fmt.Errorf("time %q has invalid minute", s)
	}
	return TimeOfDay(hour*60 + min), nil
}

// At truncates t to minute granularity.
func At(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Schedule holds the five prayer times for one calendar day. It is created
// once per day and never modified afterwards.
type Schedule struct {
	date  time.Time
	times [5]TimeOfDay
}

// NewSchedule parses the given name → "HH:MM" mapping into a Schedule.
// All five prayers must be present and their times must be non-decreasing
// in prayer order (prayer times never wrap around midnight).
func NewSchedule(date time.Time, times map[Name]string) (*Schedule, error) {
	s := &Schedule{date: date}
	for i, name := range Names {
		str, ok := times[name]
		if !ok || str == "" {
			return nil, fmt.Errorf("no time for %s", name)
		}
		t, err := ParseTimeOfDay(str)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		if i > 0 && t < s.times[i-1] {
			return nil, fmt.Errorf("%s (%v) earlier than %s (%v)", name, t, Names[i-1], s.times[i-1])
		}
		s.times[i] = t
	}
	return s, nil
}

// Date returns the day the schedule was fetched for.
func (s *Schedule) Date() time.Time { return s.date }

// Time returns the time of day of the named prayer.
func (s *Schedule) Time(name Name) TimeOfDay {
	for i, n := range Names {
		if n == name {
			return s.times[i]
		}
	}
	panic(fmt.Sprintf("unknown prayer %q", name))
}

// Next returns the first prayer whose time is still ahead of now, or
// ok == false if all five have passed for the day.
func (s *Schedule) Next(now time.Time) (name Name, at TimeOfDay, ok bool) {
	nowAt := At(now)
	for i, n := range Names {
		if s.times[i] > nowAt {
			return n, s.times[i], true
		}
	}
	return "", 0, false
}
