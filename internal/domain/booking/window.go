package booking

import (
	"time"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// Window is the requested stay: a calendar day plus the half-open
// interval [CheckIn, CheckOut).
type Window struct {
	Date     time.Time
	CheckIn  time.Time
	CheckOut time.Time
}

func WindowOf(b *models.Booking) Window {
	return Window{Date: b.Date, CheckIn: b.CheckInTime, CheckOut: b.CheckOutTime}
}

// ValidateWindow rejects days before today and empty or inverted intervals.
// today must be a calendar day as produced by timezone.CalendarDay.
func ValidateWindow(w Window, today time.Time) error {
	if w.Date.Before(today) {
		return httperr.New(httperr.KindInvalidTimeWindow, "booking date cannot be in the past").
			WithCode("date_in_past")
	}
	if !w.CheckOut.After(w.CheckIn) {
		return httperr.New(httperr.KindInvalidTimeWindow, "check-out time must be after check-in time").
			WithCode("invalid_check_out")
	}
	return nil
}

// Overlaps reports whether [in, out) collides with [existingIn, existingOut).
func Overlaps(existingIn, existingOut, in, out time.Time) bool {
	startsInside := !existingIn.After(in) && existingOut.After(in)
	endsInside := existingIn.Before(out) && !existingOut.Before(out)
	contains := !existingIn.Before(in) && !existingOut.After(out)
	return startsInside || endsInside || contains
}

// FindConflict returns the first active booking that overlaps w, or nil.
// Callers pass bookings for the same dog and date.
func FindConflict(existing []models.Booking, w Window) *models.Booking {
	for i := range existing {
		b := &existing[i]
		if !Status(b.Status).IsActive() {
			continue
		}
		if Overlaps(b.CheckInTime, b.CheckOutTime, w.CheckIn, w.CheckOut) {
			return b
		}
	}
	return nil
}

func ErrSlotAlreadyBooked() error {
	return httperr.New(httperr.KindSlotAlreadyBooked, "dog already has a booking in this time window")
}
