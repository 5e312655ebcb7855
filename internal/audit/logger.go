package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Store persists and queries audit rows.
type Store interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
	DeleteAuditLogsBefore(ctx context.Context, before time.Time) (int64, error)
}

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
	}
	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return err
		}
		row.Metadata = datatypes.JSON(b)
	}
	return l.store.CreateAuditLog(ctx, &row)
}

// Ref returns a pointer to a copy of id for Event fields.
func Ref(id uint) *uint {
	return &id
}
