package booking

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	actor access.Actor,
	bookingID uint,
) (*View, error) {

	b, err := loadOwned(ctx, uc.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}
	summary, err := summarize(ctx, uc.repo, b.ID)
	if err != nil {
		return nil, err
	}
	v := newView(*b, summary)
	return &v, nil
}

// GetServicesSummary reprices a booking's lines at current catalog prices.
type GetServicesSummary struct {
	repo domain.Repository
}

func NewGetServicesSummary(repo domain.Repository) *GetServicesSummary {
	return &GetServicesSummary{repo: repo}
}

func (uc *GetServicesSummary) Execute(
	ctx context.Context,
	actor access.Actor,
	bookingID uint,
) (*pricing.Summary, error) {

	b, err := loadOwned(ctx, uc.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}
	summary, err := summarize(ctx, uc.repo, b.ID)
	if err != nil {
		return nil, err
	}
	if summary.Services == nil {
		summary.Services = []pricing.PricedLine{}
	}
	return &summary, nil
}
