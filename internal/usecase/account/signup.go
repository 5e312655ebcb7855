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

// TokenIssuer signs a session token for a user.
type TokenIssuer interface {
	Issue(userID uint, role string) (string, error)
}

// DomainChecker reports whether an email's domain can receive mail.
type DomainChecker interface {
	Valid(ctx context.Context, email string) bool
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ======================================================
// SIGNUP
// ======================================================

// Signup always creates a regular user; admins are created by admins.
type Signup struct {
	repo    domain.Repository
	tokens  TokenIssuer
	domains DomainChecker
	audit   *audit.Dispatcher
	cost    int
}

func NewSignup(
	repo domain.Repository,
	tokens TokenIssuer,
	domains DomainChecker,
	audit *audit.Dispatcher,
) *Signup {
	return &Signup{
		repo:    repo,
		tokens:  tokens,
		domains: domains,
		audit:   audit,
		cost:    bcrypt.DefaultCost,
	}
}

func (uc *Signup) Execute(ctx context.Context, in SignupInput) (*AuthResult, error) {
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

	if uc.domains != nil && !uc.domains.Valid(ctx, email) {
		return nil, httperr.Validation("email domain does not accept mail").
			WithCode("invalid_email_domain")
	}

	hashed, err := hashPassword(in.Password, uc.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         string(access.RoleUser),
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, httperr.Conflict("email already registered").WithCode("email_taken")
		}
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(user.ID),
		Action:   "user_signed_up",
		Entity:   "user",
		EntityID: audit.Ref(user.ID),
	})

	return &AuthResult{Token: token, User: user}, nil
}
