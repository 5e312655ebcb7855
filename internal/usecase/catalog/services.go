package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type CreateServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	// Active defaults to true.
	Active *bool
}

type UpdateServiceInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Active      *bool
}

// Services manages the catalog. Reads and writes only require a signed-in
// actor.
type Services struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewServices(repo domain.Repository, audit *audit.Dispatcher) *Services {
	return &Services{repo: repo, audit: audit}
}

func (uc *Services) List(ctx context.Context, actor access.Actor, activeOnly bool) ([]models.Service, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return uc.repo.ListServices(ctx, activeOnly)
}

func (uc *Services) Get(ctx context.Context, actor access.Actor, id uint) (*models.Service, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return uc.repo.GetService(ctx, id)
}

func (uc *Services) Create(ctx context.Context, actor access.Actor, in CreateServiceInput) (*models.Service, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	svc := &models.Service{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Active:      true,
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}

	if err := domain.Validate(svc.Name, svc.Description, svc.Price); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "service_created",
		Entity:   "service",
		EntityID: audit.Ref(svc.ID),
		Metadata: map[string]string{"price": svc.Price.StringFixed(2)},
	})
	return svc, nil
}

func (uc *Services) Update(ctx context.Context, actor access.Actor, id uint, in UpdateServiceInput) (*models.Service, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}

	if err := domain.Validate(svc.Name, svc.Description, svc.Price); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: audit.Ref(svc.ID),
	})
	return svc, nil
}

// Delete fails with Conflict while bookings still reference the service;
// deactivating it is the alternative.
func (uc *Services) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}
	if err := uc.repo.DeleteService(ctx, id); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return httperr.Conflict("service is attached to bookings").WithCode("service_in_use")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: audit.Ref(id),
	})
	return nil
}
