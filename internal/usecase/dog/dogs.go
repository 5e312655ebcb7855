package dog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/dog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type CreateDogInput struct {
	Name  string
	Breed string
	// OwnerID lets an admin register a dog for someone else.
	OwnerID uint
}

type UpdateDogInput struct {
	Name  *string
	Breed *string
}

type Dogs struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDogs(repo domain.Repository, audit *audit.Dispatcher) *Dogs {
	return &Dogs{repo: repo, audit: audit}
}

func (uc *Dogs) Create(ctx context.Context, actor access.Actor, in CreateDogInput) (*models.Dog, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.MissingFields("name")
	}

	owner := actor.ID
	if in.OwnerID != 0 && in.OwnerID != actor.ID {
		if !actor.IsAdmin() {
			return nil, httperr.Forbidden("cannot register a dog for another user")
		}
		owner = in.OwnerID
	}

	d := &models.Dog{Name: name, Breed: strings.TrimSpace(in.Breed), OwnerID: owner}
	if err := uc.repo.CreateDog(ctx, d); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, httperr.NotFound("user")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "dog_created",
		Entity:   "dog",
		EntityID: audit.Ref(d.ID),
	})
	return d, nil
}

// List returns every dog for admins and the actor's own dogs otherwise.
func (uc *Dogs) List(ctx context.Context, actor access.Actor) ([]models.Dog, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return uc.repo.ListDogs(ctx, nil)
	}
	return uc.repo.ListDogs(ctx, &actor.ID)
}

func (uc *Dogs) Get(ctx context.Context, actor access.Actor, id uint) (*models.Dog, error) {
	return uc.loadOwned(ctx, actor, id)
}

func (uc *Dogs) Update(ctx context.Context, actor access.Actor, id uint, in UpdateDogInput) (*models.Dog, error) {
	d, err := uc.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.MissingFields("name")
		}
		d.Name = name
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}

	if err := uc.repo.SaveDog(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "dog_updated",
		Entity:   "dog",
		EntityID: audit.Ref(d.ID),
	})
	return d, nil
}

// Delete also removes the dog's bookings.
func (uc *Dogs) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if _, err := uc.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteDog(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "dog_deleted",
		Entity:   "dog",
		EntityID: audit.Ref(id),
	})
	return nil
}

func (uc *Dogs) loadOwned(ctx context.Context, actor access.Actor, id uint) (*models.Dog, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	d, err := uc.repo.GetDog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, d.OwnerID); err != nil {
		return nil, err
	}
	return d, nil
}
