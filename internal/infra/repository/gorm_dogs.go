package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func (s *GormStore) CreateDog(ctx context.Context, d *models.Dog) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error, "dog")
}

func (s *GormStore) GetDog(ctx context.Context, id uint) (*models.Dog, error) {
	var d models.Dog
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, "dog")
	}
	return &d, nil
}

// LockDog takes a row lock that serializes booking writes for the dog until
// the surrounding transaction ends.
func (s *GormStore) LockDog(ctx context.Context, id uint) (*models.Dog, error) {
	var d models.Dog
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error; err != nil {
		return nil, translate(err, "dog")
	}
	return &d, nil
}

func (s *GormStore) ListDogs(ctx context.Context, ownerID *uint) ([]models.Dog, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}

	var dogs []models.Dog
	if err := q.Find(&dogs).Error; err != nil {
		return nil, err
	}
	return dogs, nil
}

func (s *GormStore) SaveDog(ctx context.Context, d *models.Dog) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error, "dog")
}

func (s *GormStore) DeleteDog(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Dog{}, id)
	if res.Error != nil {
		return translate(res.Error, "dog")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "dog")
	}
	return nil
}
