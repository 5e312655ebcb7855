package booking

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{repo: repo, audit: audit}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	bookingID uint,
	status string,
) (*View, error) {

	if status == "" {
		return nil, httperr.MissingFields("status")
	}

	owned, err := loadOwned(ctx, uc.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		b        *models.Booking
		previous domain.Status
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
		previous = domain.Status(b.Status)

		if !previous.IsActive() && next.IsActive() {
			if err := ensureNoConflict(ctx, tx, b.DogID, domain.WindowOf(b), b.ID); err != nil {
				return err
			}
		}
		b.Status = string(next)
		return tx.SaveBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	summary, err := summarize(ctx, uc.repo, b.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]string{
			"from": string(previous),
			"to":   string(next),
		},
	})

	v := newView(*b, summary)
	return &v, nil
}
