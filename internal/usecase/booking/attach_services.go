package booking

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
)

// AttachServices replaces every service line of a booking.
type AttachServices struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAttachServices(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AttachServices {
	return &AttachServices{repo: repo, audit: audit}
}

func (uc *AttachServices) Execute(
	ctx context.Context,
	actor access.Actor,
	bookingID uint,
	in []pricing.LineInput,
) (*pricing.Summary, error) {

	b, err := loadOwned(ctx, uc.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}

	lines, err := pricing.Normalize(in)
	if err != nil {
		return nil, err
	}

	var summary pricing.Summary
	if err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		summary, err = replaceServices(ctx, tx, b.ID, lines)
		return err
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "booking_services_replaced",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{
			"lines":      len(lines),
			"grandTotal": summary.GrandTotal.String(),
		},
	})

	if summary.Services == nil {
		summary.Services = []pricing.PricedLine{}
	}
	return &summary, nil
}
