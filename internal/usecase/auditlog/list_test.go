package auditlog

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func TestListAuditLogs(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	for i := 0; i < 5; i++ {
		action := "booking_created"
		if i%2 == 1 {
			action = "dog_created"
		}
		if err := store.CreateAuditLog(ctx, &models.AuditLog{Action: action, Entity: "x"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := NewListAuditLogs(store)
	admin := access.NewActor(1, "admin")

	if _, err := uc.Execute(ctx, access.NewActor(2, "user"), ListInput{}); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("non-admin: %v", err)
	}

	out, err := uc.Execute(ctx, admin, ListInput{Action: "booking_created", Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Total != 3 || len(out.Logs) != 2 || out.Page != 1 {
		t.Fatalf("page 1 = %+v", out)
	}

	out, err = uc.Execute(ctx, admin, ListInput{Action: "booking_created", Limit: 2, Page: 2})
	if err != nil || len(out.Logs) != 1 {
		t.Fatalf("page 2 = %+v, %v", out, err)
	}

	out, _ = uc.Execute(ctx, admin, ListInput{Limit: 10_000})
	if out.Limit != MaxLimit {
		t.Fatalf("limit = %d, want clamp to %d", out.Limit, MaxLimit)
	}
}
