package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func at(hour int) time.Time {
	return time.Date(2030, 5, 10, hour, 0, 0, 0, time.UTC)
}

func TestValidateWindow(t *testing.T) {
	today := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		w    Window
		ok   bool
	}{
		{name: "today", w: Window{Date: today, CheckIn: at(8), CheckOut: at(17)}, ok: true},
		{name: "future", w: Window{Date: today.AddDate(0, 0, 3), CheckIn: at(8), CheckOut: at(9)}, ok: true},
		{name: "yesterday", w: Window{Date: today.AddDate(0, 0, -1), CheckIn: at(8), CheckOut: at(17)}},
		{name: "equal times", w: Window{Date: today, CheckIn: at(8), CheckOut: at(8)}},
		{name: "inverted", w: Window{Date: today, CheckIn: at(17), CheckOut: at(8)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.w, today)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !httperr.Is(err, httperr.KindInvalidTimeWindow) {
				t.Fatalf("expected invalid time window, got %v", err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	// existing [10, 12)
	tests := []struct {
		name    string
		in, out int
		want    bool
	}{
		{name: "starts inside", in: 11, out: 13, want: true},
		{name: "ends inside", in: 9, out: 11, want: true},
		{name: "contains existing", in: 9, out: 13, want: true},
		{name: "same window", in: 10, out: 12, want: true},
		{name: "inside existing", in: 10, out: 11, want: true},
		{name: "adjacent after", in: 12, out: 14, want: false},
		{name: "adjacent before", in: 8, out: 10, want: false},
		{name: "disjoint", in: 14, out: 16, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(at(10), at(12), at(tt.in), at(tt.out)); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindConflictIgnoresInactive(t *testing.T) {
	existing := []models.Booking{
		{ID: 1, Status: string(StatusCancelled), CheckInTime: at(10), CheckOutTime: at(12)},
		{ID: 2, Status: string(StatusCompleted), CheckInTime: at(10), CheckOutTime: at(12)},
	}
	w := Window{CheckIn: at(11), CheckOut: at(13)}
	if c := FindConflict(existing, w); c != nil {
		t.Fatalf("inactive booking %d reported as conflict", c.ID)
	}

	existing = append(existing, models.Booking{ID: 3, Status: string(StatusPending), CheckInTime: at(10), CheckOutTime: at(12)})
	if c := FindConflict(existing, w); c == nil || c.ID != 3 {
		t.Fatalf("expected conflict with pending booking 3, got %v", c)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("completed"); err != nil || s != StatusCompleted {
		t.Fatalf("ParseStatus(completed) = %q, %v", s, err)
	}
	if _, err := ParseStatus("ARCHIVED"); !httperr.Is(err, httperr.KindInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if !StatusPending.IsActive() || !StatusConfirmed.IsActive() || StatusCancelled.IsActive() {
		t.Fatalf("unexpected IsActive results")
	}
}
