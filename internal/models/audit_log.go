package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID *uint  `gorm:"index" json:"actorId"`
	Action  string `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uint          `json:"entityId"`
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
