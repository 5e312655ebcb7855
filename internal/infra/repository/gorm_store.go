package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/dog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

// GormStore is the Postgres-backed store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(
	ctx context.Context,
	fn func(tx booking.Repository) error,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	return translate(err, "record")
}

// translate maps driver errors onto the closed error kinds. Errors it does
// not recognize pass through unchanged.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httperr.NotFound(entity)
	case httperr.IsExclusionConflict(err):
		return booking.ErrSlotAlreadyBooked()
	case httperr.IsUniqueViolation(err):
		return httperr.Conflict("resource already exists")
	case httperr.IsForeignKeyViolation(err):
		return httperr.Conflict("resource is referenced by other records")
	case httperr.IsNumericOutOfRange(err):
		return httperr.Validation("amount out of range").WithCode("amount_out_of_range")
	default:
		return err
	}
}

// Compile-time checks
var (
	_ booking.Repository = (*GormStore)(nil)
	_ dog.Repository     = (*GormStore)(nil)
	_ catalog.Repository = (*GormStore)(nil)
	_ account.Repository = (*GormStore)(nil)
	_ audit.Store        = (*GormStore)(nil)
)
