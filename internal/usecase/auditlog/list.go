package auditlog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type ListInput struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

type ListOutput struct {
	Logs  []models.AuditLog
	Page  int
	Limit int
	Total int64
}

type ListAuditLogs struct {
	store audit.Store
}

func NewListAuditLogs(store audit.Store) *ListAuditLogs {
	return &ListAuditLogs{store: store}
}

func (uc *ListAuditLogs) Execute(
	ctx context.Context,
	actor access.Actor,
	in ListInput,
) (*ListOutput, error) {

	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if in.From != nil && in.To != nil && !in.From.Before(*in.To) {
		return nil, httperr.Validation("from must be before to").WithCode("invalid_range")
	}

	page := max(in.Page, 1)
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	logs, total, err := uc.store.ListAuditLogs(ctx, audit.Filter{
		Action: in.Action,
		Entity: in.Entity,
		From:   in.From,
		To:     in.To,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Logs: logs, Page: page, Limit: limit, Total: total}, nil
}
