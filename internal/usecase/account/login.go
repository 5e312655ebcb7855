package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

type Login struct {
	repo   domain.Repository
	tokens TokenIssuer
	audit  *audit.Dispatcher
}

func NewLogin(repo domain.Repository, tokens TokenIssuer, audit *audit.Dispatcher) *Login {
	return &Login{repo: repo, tokens: tokens, audit: audit}
}

// Execute returns the same error for an unknown email and a wrong password.
func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	invalid := httperr.Unauthenticated("invalid email or password").WithCode("invalid_credentials")

	user, err := uc.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if httperr.Is(err, httperr.KindNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(user.ID),
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: audit.Ref(user.ID),
	})

	return &AuthResult{Token: token, User: user}, nil
}
