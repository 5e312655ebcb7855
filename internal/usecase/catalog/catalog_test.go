package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func expectKind(t *testing.T, err error, kind httperr.Kind) {
	t.Helper()
	if got := httperr.KindOf(err); err == nil || got != kind {
		t.Fatalf("expected %s, got %v", kind, err)
	}
}

func TestServicesLifecycle(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	uc := NewServices(store, nil)
	user := access.NewActor(1, "user")

	_, err := uc.Create(ctx, access.Actor{}, CreateServiceInput{Name: "Walk", Price: decimal.NewFromInt(10)})
	expectKind(t, err, httperr.KindUnauthenticated)

	walk, err := uc.Create(ctx, user, CreateServiceInput{Name: " Walk ", Price: decimal.RequireFromString("12.50")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if walk.Name != "Walk" || !walk.Active {
		t.Fatalf("unexpected service: %+v", walk)
	}

	inactive := false
	if _, err := uc.Create(ctx, user, CreateServiceInput{Name: "Spa", Price: decimal.NewFromInt(30), Active: &inactive}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	_, err = uc.Create(ctx, user, CreateServiceInput{Name: "Free", Price: decimal.Zero})
	expectKind(t, err, httperr.KindValidation)

	all, _ := uc.List(ctx, user, false)
	active, _ := uc.List(ctx, user, true)
	if len(all) != 2 || len(active) != 1 {
		t.Fatalf("list sizes: all=%d active=%d", len(all), len(active))
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		price := decimal.NewFromInt(15)
		svc, err := uc.Update(ctx, user, walk.ID, UpdateServiceInput{Price: &price})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if svc.Name != "Walk" || !svc.Price.Equal(price) {
			t.Fatalf("unexpected service: %+v", svc)
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		neg := decimal.NewFromInt(-1)
		_, err := uc.Update(ctx, user, walk.ID, UpdateServiceInput{Price: &neg})
		expectKind(t, err, httperr.KindValidation)
	})

	t.Run("description too long", func(t *testing.T) {
		long := strings.Repeat("x", 251)
		_, err := uc.Update(ctx, user, walk.ID, UpdateServiceInput{Description: &long})
		expectKind(t, err, httperr.KindValidation)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := uc.Get(ctx, user, 999)
		expectKind(t, err, httperr.KindNotFound)
	})
}

func TestDeleteServiceInUse(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	uc := NewServices(store, nil)
	user := access.NewActor(1, "user")

	owner := &models.User{Name: "ana", Email: "ana@x.io", PasswordHash: "x", Role: "user"}
	_ = store.CreateUser(ctx, owner)
	d := &models.Dog{Name: "Rex", OwnerID: owner.ID}
	_ = store.CreateDog(ctx, d)

	walk, _ := uc.Create(ctx, user, CreateServiceInput{Name: "Walk", Price: decimal.NewFromInt(10)})
	bath, _ := uc.Create(ctx, user, CreateServiceInput{Name: "Bath", Price: decimal.NewFromInt(5)})

	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	b := &models.Booking{DogID: d.ID, Date: day, CheckInTime: day.Add(9 * time.Hour), CheckOutTime: day.Add(10 * time.Hour), Status: "CONFIRMED"}
	if err := store.CreateBooking(ctx, b); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := store.AddBookingServices(ctx, []models.BookingService{{BookingID: b.ID, ServiceID: walk.ID, Quantity: 1}}); err != nil {
		t.Fatalf("link: %v", err)
	}

	err := uc.Delete(ctx, user, walk.ID)
	expectKind(t, err, httperr.KindConflict)

	if err := uc.Delete(ctx, user, bath.ID); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	expectKind(t, uc.Delete(ctx, user, bath.ID), httperr.KindNotFound)
}
