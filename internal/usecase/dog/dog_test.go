package dog

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type fixture struct {
	store *repository.MemoryStore
	dogs  *Dogs
	admin access.Actor
	ana   access.Actor
	bob   access.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()

	seed := func(name, role string) access.Actor {
		u := &models.User{Name: name, Email: name + "@x.io", PasswordHash: "x", Role: role}
		if err := store.CreateUser(context.Background(), u); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
		return access.NewActor(u.ID, u.Role)
	}

	return &fixture{
		store: store,
		dogs:  NewDogs(store, nil),
		admin: seed("root", "admin"),
		ana:   seed("ana", "user"),
		bob:   seed("bob", "user"),
	}
}

func expectKind(t *testing.T, err error, kind httperr.Kind) {
	t.Helper()
	if got := httperr.KindOf(err); err == nil || got != kind {
		t.Fatalf("expected %s, got %v", kind, err)
	}
}

func TestDogsOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rex, err := f.dogs.Create(ctx, f.ana, CreateDogInput{Name: "Rex", Breed: "Beagle"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rex.OwnerID != f.ana.ID {
		t.Fatalf("owner = %d, want %d", rex.OwnerID, f.ana.ID)
	}

	_, err = f.dogs.Create(ctx, f.ana, CreateDogInput{Name: "Spot", OwnerID: f.bob.ID})
	expectKind(t, err, httperr.KindForbidden)

	spot, err := f.dogs.Create(ctx, f.admin, CreateDogInput{Name: "Spot", OwnerID: f.bob.ID})
	if err != nil || spot.OwnerID != f.bob.ID {
		t.Fatalf("admin create for bob = %+v, %v", spot, err)
	}

	_, err = f.dogs.Create(ctx, f.ana, CreateDogInput{Name: "  "})
	expectKind(t, err, httperr.KindMissingField)

	_, err = f.dogs.Get(ctx, f.bob, rex.ID)
	expectKind(t, err, httperr.KindForbidden)

	name := "Rex II"
	_, err = f.dogs.Update(ctx, f.bob, rex.ID, UpdateDogInput{Name: &name})
	expectKind(t, err, httperr.KindForbidden)

	updated, err := f.dogs.Update(ctx, f.admin, rex.ID, UpdateDogInput{Name: &name})
	if err != nil || updated.Name != "Rex II" || updated.Breed != "Beagle" {
		t.Fatalf("admin update = %+v, %v", updated, err)
	}

	mine, _ := f.dogs.List(ctx, f.ana)
	all, _ := f.dogs.List(ctx, f.admin)
	if len(mine) != 1 || len(all) != 2 {
		t.Fatalf("list sizes: mine=%d all=%d", len(mine), len(all))
	}

	expectKind(t, f.dogs.Delete(ctx, f.bob, rex.ID), httperr.KindForbidden)
	if err := f.dogs.Delete(ctx, f.ana, rex.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.dogs.Get(ctx, f.ana, rex.ID)
	expectKind(t, err, httperr.KindNotFound)
}

type memObjects struct {
	keys []string
}

func (m *memObjects) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if contentType != "image/webp" || len(body) == 0 {
		return "", httperr.Validation("bad object")
	}
	m.keys = append(m.keys, key)
	return "https://cdn.example/" + key, nil
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rex, err := f.dogs.Create(ctx, f.ana, CreateDogInput{Name: "Rex"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	objects := &memObjects{}
	upload := NewUploadPhoto(f.dogs, objects)

	d, err := upload.Execute(ctx, f.ana, rex.ID, samplePNG(t))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(objects.keys) != 1 || !strings.HasSuffix(d.PhotoURL, ".webp") {
		t.Fatalf("photo not stored: %+v %v", d, objects.keys)
	}
	stored, _ := f.store.GetDog(ctx, rex.ID)
	if stored.PhotoURL != d.PhotoURL {
		t.Fatalf("photo url not saved")
	}

	_, err = upload.Execute(ctx, f.bob, rex.ID, samplePNG(t))
	expectKind(t, err, httperr.KindForbidden)

	_, err = upload.Execute(ctx, f.ana, rex.ID, []byte("plain text"))
	expectKind(t, err, httperr.KindValidation)

	_, err = upload.Execute(ctx, f.ana, rex.ID, nil)
	expectKind(t, err, httperr.KindMissingField)

	_, err = NewUploadPhoto(f.dogs, nil).Execute(ctx, f.ana, rex.ID, samplePNG(t))
	expectKind(t, err, httperr.KindUnavailable)
}
