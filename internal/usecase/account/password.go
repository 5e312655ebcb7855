package account

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return httperr.Validation("password too short").WithFields(httperr.FieldError{
			Field: "password",
			Error: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		})
	}
	if len(pw) > MaxPasswordBytes {
		return httperr.Validation("password too long").WithFields(httperr.FieldError{
			Field: "password",
			Error: fmt.Sprintf("must not exceed %d bytes", MaxPasswordBytes),
		})
	}
	return nil
}

func hashPassword(pw string, cost int) (string, error) {
	if err := checkPassword(pw); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
