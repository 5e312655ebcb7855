package booking

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns every booking for admins and the bookings of the actor's
// own dogs otherwise.
func (uc *ListBookings) Execute(
	ctx context.Context,
	actor access.Actor,
) ([]View, error) {

	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var ownerID *uint
	if !actor.IsAdmin() {
		ownerID = &actor.ID
	}

	bookings, err := uc.repo.ListBookings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return []View{}, nil
	}

	ids := make([]uint, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	links, err := uc.repo.ListBookingServices(ctx, ids...)
	if err != nil {
		return nil, err
	}
	summaries := pricing.GroupByBooking(links)

	out := make([]View, len(bookings))
	for i, b := range bookings {
		out[i] = newView(b, summaries[b.ID])
	}
	return out, nil
}
