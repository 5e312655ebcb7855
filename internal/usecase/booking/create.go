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

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor access.Actor

	DogID        uint
	Date         string
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Notes        string

	Services []pricing.LineInput
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking handles both creation paths: the direct one confirms the
// booking and prices its services, the deferred one stores metadata only
// and leaves the booking PENDING.
type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	clock  timezone.Clock
	status domain.Status
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		clock:  clock,
		status: domain.StatusConfirmed,
	}
}

func NewCreatePendingBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateBooking {
	uc := NewCreateBooking(repo, audit, clock)
	uc.status = domain.StatusPending
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*View, error) {

	if err := access.RequireAuthenticated(in.Actor); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	if err := requireCreateFields(in); err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, httperr.Validation("date must be YYYY-MM-DD or an RFC 3339 timestamp").
			WithCode("invalid_date")
	}

	// --------------------------------------------------
	// Ownership before any time rule
	// --------------------------------------------------
	dog, err := uc.repo.GetDog(ctx, in.DogID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(in.Actor, dog.OwnerID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Temporal sanity
	// --------------------------------------------------
	w := domain.Window{Date: date, CheckIn: *in.CheckInTime, CheckOut: *in.CheckOutTime}
	if err := domain.ValidateWindow(w, uc.clock.Today()); err != nil {
		return nil, err
	}

	var lines []pricing.Line
	if uc.status == domain.StatusConfirmed && len(in.Services) > 0 {
		if lines, err = pricing.Normalize(in.Services); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Conflict check, insert and pricing in one transaction
	// --------------------------------------------------
	b := &models.Booking{
		DogID:        dog.ID,
		Date:         w.Date,
		CheckInTime:  w.CheckIn,
		CheckOutTime: w.CheckOut,
		Status:       string(uc.status),
		Notes:        in.Notes,
	}

	var summary pricing.Summary
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockDog(ctx, dog.ID); err != nil {
			return err
		}
		if err := ensureNoConflict(ctx, tx, dog.ID, w, 0); err != nil {
			return err
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		summary, err = replaceServices(ctx, tx, b.ID, lines)
		return err
	})
	if err != nil {
		return nil, err
	}
	b.GrandTotal = summary.GrandTotal

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(in.Actor.ID),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{
			"dogId":      dog.ID,
			"status":     b.Status,
			"grandTotal": summary.GrandTotal.String(),
		},
	})

	v := newView(*b, summary)
	return &v, nil
}

func requireCreateFields(in CreateBookingInput) error {
	var missing []string
	if in.DogID == 0 {
		missing = append(missing, "dogId")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if in.CheckInTime == nil {
		missing = append(missing, "checkInTime")
	}
	if in.CheckOutTime == nil {
		missing = append(missing, "checkOutTime")
	}
	if len(missing) > 0 {
		return httperr.MissingFields(missing...)
	}
	return nil
}
