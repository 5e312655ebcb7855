package booking

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actor access.Actor,
	bookingID uint,
) error {

	b, err := loadOwned(ctx, uc.repo, actor, bookingID)
	if err != nil {
		return err
	}

	if err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if err := tx.ClearBookingServices(ctx, b.ID); err != nil {
			return err
		}
		return tx.DeleteBooking(ctx, b.ID)
	}); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{"dogId": b.DogID},
	})
	return nil
}
