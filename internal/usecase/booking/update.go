package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
	"github.com/BruksfildServices01/daycare-scheduler/internal/timezone"
)

// UpdateBookingInput carries a partial update. Nil fields are left as they
// are; a non-nil Services replaces every line, even when empty.
type UpdateBookingInput struct {
	Actor     access.Actor
	BookingID uint

	Date         *string
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       *string
	Notes        *string

	Services *[]pricing.LineInput
}

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateBooking {
	return &UpdateBooking{repo: repo, audit: audit, clock: clock}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*View, error) {

	owned, err := loadOwned(ctx, uc.repo, in.Actor, in.BookingID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Parse input; stored state is read again under the lock
	// --------------------------------------------------
	var next *domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		next = &st
	}

	var date *time.Time
	if in.Date != nil {
		d, err := timezone.ParseDate(*in.Date, uc.clock.Location())
		if err != nil {
			return nil, httperr.Validation("date must be YYYY-MM-DD or an RFC 3339 timestamp").
				WithCode("invalid_date")
		}
		date = &d
	}

	var lines []pricing.Line
	if in.Services != nil {
		if lines, err = pricing.Normalize(*in.Services); err != nil {
			return nil, err
		}
	}

	var (
		b       *models.Booking
		moved   bool
		summary pricing.Summary
	)
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockDog(ctx, owned.DogID); err != nil {
			return err
		}
		fresh, err := tx.GetBooking(ctx, owned.ID)
		if err != nil {
			return err
		}
		b = fresh

		stored := domain.WindowOf(b)
		w := stored
		if date != nil {
			w.Date = *date
		}
		if in.CheckInTime != nil {
			w.CheckIn = *in.CheckInTime
		}
		if in.CheckOutTime != nil {
			w.CheckOut = *in.CheckOutTime
		}

		// Resending stored values is not a move and is not re-validated.
		moved = !w.Date.Equal(stored.Date) ||
			!w.CheckIn.Equal(stored.CheckIn) ||
			!w.CheckOut.Equal(stored.CheckOut)
		if moved {
			if err := domain.ValidateWindow(w, uc.clock.Today()); err != nil {
				return err
			}
		}

		current := domain.Status(b.Status)
		status := current
		if next != nil {
			status = *next
		}

		// A cancelled or completed booking that becomes active again must fit
		// the schedule like a new one.
		reactivated := !current.IsActive() && status.IsActive()
		if status.IsActive() && (moved || reactivated) {
			if err := ensureNoConflict(ctx, tx, b.DogID, w, b.ID); err != nil {
				return err
			}
		}

		b.Date, b.CheckInTime, b.CheckOutTime = w.Date, w.CheckIn, w.CheckOut
		b.Status = string(status)
		if in.Notes != nil {
			b.Notes = *in.Notes
		}
		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}

		if in.Services != nil {
			summary, err = replaceServices(ctx, tx, b.ID, lines)
		} else {
			summary, err = refreshTotal(ctx, tx, b.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	b.GrandTotal = summary.GrandTotal

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(in.Actor.ID),
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{
			"status":          b.Status,
			"timesChanged":    moved,
			"servicesChanged": in.Services != nil,
		},
	})

	v := newView(*b, summary)
	return &v, nil
}
