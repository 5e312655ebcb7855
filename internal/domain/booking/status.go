package booking

import (
	"strings"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ParseStatus accepts any enum member regardless of case. Transitions are
// not restricted: every status may move to every other.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range allStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", httperr.New(httperr.KindInvalidStatus,
		"status must be one of: PENDING, CONFIRMED, COMPLETED, CANCELLED")
}

// IsActive reports whether the status occupies the dog's schedule.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func ActiveStatuses() []Status {
	return []Status{StatusConfirmed, StatusPending}
}
