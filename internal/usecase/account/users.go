package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput leaves nil fields unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// Users manages user records on behalf of the user themself or an admin.
type Users struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cost  int
}

func NewUsers(repo domain.Repository, audit *audit.Dispatcher) *Users {
	return &Users{repo: repo, audit: audit, cost: bcrypt.DefaultCost}
}

func (uc *Users) Me(ctx context.Context, actor access.Actor) (*models.User, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return uc.repo.GetUser(ctx, actor.ID)
}

func (uc *Users) Get(ctx context.Context, actor access.Actor, id uint) (*models.User, error) {
	if err := access.Authorize(actor, id); err != nil {
		return nil, err
	}
	return uc.repo.GetUser(ctx, id)
}

func (uc *Users) List(ctx context.Context, actor access.Actor) ([]models.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.repo.ListUsers(ctx)
}

func (uc *Users) Create(ctx context.Context, actor access.Actor, in CreateUserInput) (*models.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, httperr.MissingFields(missing...)
	}

	role := access.RoleUser
	if in.Role != "" {
		r, err := access.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	hashed, err := hashPassword(in.Password, uc.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hashed, Role: string(role)}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, httperr.Conflict("email already registered").WithCode("email_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "user_created",
		Entity:   "user",
		EntityID: audit.Ref(user.ID),
		Metadata: map[string]string{"role": user.Role},
	})
	return user, nil
}

func (uc *Users) Update(ctx context.Context, actor access.Actor, id uint, in UpdateUserInput) (*models.User, error) {
	if err := access.Authorize(actor, id); err != nil {
		return nil, err
	}

	user, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.MissingFields("name")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, httperr.MissingFields("email")
		}
		user.Email = email
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password, uc.cost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if in.Role != nil {
		role, err := access.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if string(role) != user.Role {
			if !actor.IsAdmin() {
				return nil, httperr.Forbidden("only admins may change roles")
			}
			user.Role = string(role)
		}
	}

	if err := uc.repo.SaveUser(ctx, user); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, httperr.Conflict("email already registered").WithCode("email_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: audit.Ref(user.ID),
	})
	return user, nil
}

// Delete removes the user together with their dogs and bookings.
func (uc *Users) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.Authorize(actor, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: audit.Ref(id),
	})
	return nil
}
