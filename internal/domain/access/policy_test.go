package access

import (
	"testing"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID uint
		want    httperr.Kind
		allowed bool
	}{
		{name: "owner", actor: NewActor(7, "user"), ownerID: 7, allowed: true},
		{name: "admin on foreign resource", actor: NewActor(1, "admin"), ownerID: 7, allowed: true},
		{name: "admin role is case insensitive", actor: NewActor(1, " Admin "), ownerID: 7, allowed: true},
		{name: "other user", actor: NewActor(8, "user"), ownerID: 7, want: httperr.KindForbidden},
		{name: "unknown role", actor: NewActor(8, "superuser"), ownerID: 7, want: httperr.KindForbidden},
		{name: "anonymous", actor: Actor{}, ownerID: 7, want: httperr.KindUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.ownerID)
			if tt.allowed {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if got := httperr.KindOf(err); got != tt.want {
				t.Fatalf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(NewActor(1, "ADMIN")); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if !httperr.Is(RequireAdmin(NewActor(2, "user")), httperr.KindForbidden) {
		t.Fatalf("user should be forbidden")
	}
	if !httperr.Is(RequireAdmin(Actor{}), httperr.KindUnauthenticated) {
		t.Fatalf("anonymous should be unauthenticated")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("Admin"); err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole(Admin) = %q, %v", r, err)
	}
	if _, err := ParseRole("owner"); !httperr.Is(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
