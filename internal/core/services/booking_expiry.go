package services

import (
	"time"

	"turfbook/internal/pkg/timeslot"
)

// SlotDuration is the assumed length of every slot; the end time written in the
// slot text is not consulted.
const SlotDuration = time.Hour

// IsBookingExpired reports whether a booking on date with the given slot text is
// over at instant now. "Today" is the calendar date of now in loc; the booking
// date's calendar fields are taken as stored. Slots that cannot be parsed are
// never considered expired on their own day.
func IsBookingExpired(date time.Time, slot string, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	by, bm, bd := date.Date()
	ny, nm, nd := now.Date()
	bookingDay := time.Date(by, bm, bd, 0, 0, 0, 0, loc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)

	switch {
	case bookingDay.Before(today):
		return true
	case bookingDay.After(today):
		return false
	}

	start, ok := timeslot.Parse(slot)
	if !ok {
		return false
	}

	slotStart := time.Date(by, bm, bd, start.Hour, start.Minute, 0, 0, loc)
	return !now.Before(slotStart.Add(SlotDuration))
}
