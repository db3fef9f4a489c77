package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for slots and appointments.
const DateLayout = "2006-01-02"

// Clinic schedule: half-hour slots from OpeningHour through the last half hour of
// ClosingHour, skipping LunchHour.
const (
	OpeningHour  = 9
	ClosingHour  = 17
	LunchHour    = 13
	SlotInterval = 30 * time.Minute
)

// TimeSlot is a bookable half hour on a calendar day.
type TimeSlot struct {
	ID        int64  `db:"id" json:"id"`
	Date      string `db:"date" json:"date"`
	Time      string `db:"time" json:"time"`
	Available bool   `db:"available" json:"available"`
}

// ParseDate parses a YYYY-MM-DD calendar date. No timezone is involved.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// FormatSlotTime renders an hour and minute the way slots are displayed, e.g. "9:00 AM".
func FormatSlotTime(hour, minute int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// DailySlotTimes returns the display times of one working day in chronological order.
func DailySlotTimes() []string {
	step := int(SlotInterval / time.Minute)

	var times []string
	for hour := OpeningHour; hour <= ClosingHour; hour++ {
		if hour == LunchHour {
			continue
		}
		for minute := 0; minute < 60; minute += step {
			times = append(times, FormatSlotTime(hour, minute))
		}
	}
	return times
}
