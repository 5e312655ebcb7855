package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
	"github.com/BruksfildServices01/daycare-scheduler/internal/timezone"
)

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (s *GormStore) ListBookings(ctx context.Context, ownerID *uint) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{}).Select("bookings.*")
	if ownerID != nil {
		q = q.Joins("JOIN dogs ON dogs.id = bookings.dog_id").
			Where("dogs.owner_id = ?", *ownerID)
	}

	var bookings []models.Booking
	if err := q.
		Order("bookings.date ASC, bookings.check_in_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) ListActiveBookingsForDog(
	ctx context.Context,
	dogID uint,
	date time.Time,
	excludeID uint,
) ([]models.Booking, error) {

	// date is compared as text so the session time zone cannot shift the day.
	q := s.db.WithContext(ctx).
		Where(
			"dog_id = ? AND date = ?::date AND status IN ?",
			dogID,
			timezone.FormatDate(date),
			activeStatusNames(),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var bookings []models.Booking
	if err := q.Order("check_in_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error, "booking")
}

func (s *GormStore) SaveBooking(ctx context.Context, b *models.Booking) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error, "booking")
}

func (s *GormStore) DeleteBooking(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return translate(res.Error, "booking")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "booking")
	}
	return nil
}

func (s *GormStore) SetGrandTotal(ctx context.Context, bookingID uint, total decimal.Decimal) error {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("grand_total", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "booking")
	}
	return nil
}

// --------------------------------------------------
// Service lines
// --------------------------------------------------

func (s *GormStore) ClearBookingServices(ctx context.Context, bookingID uint) error {
	return s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.BookingService{}).Error
}

func (s *GormStore) AddBookingServices(ctx context.Context, rows []models.BookingService) error {
	if len(rows) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&rows).Error, "service")
}

func (s *GormStore) ListBookingServices(ctx context.Context, bookingIDs ...uint) ([]models.BookingService, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	var rows []models.BookingService
	if err := s.db.WithContext(ctx).
		Preload("Service").
		Where("booking_id IN ?", bookingIDs).
		Order("booking_id ASC, service_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func activeStatusNames() []string {
	active := domain.ActiveStatuses()
	names := make([]string, len(active))
	for i, st := range active {
		names[i] = string(st)
	}
	return names
}
