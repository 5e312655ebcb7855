package repository

import (
	"context"
	"time"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func (s *GormStore) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *GormStore) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *GormStore) DeleteAuditLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
