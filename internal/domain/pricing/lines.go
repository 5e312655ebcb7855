package pricing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// MaxQuantity bounds a single line after duplicates are merged.
const MaxQuantity = 1000

// LineInput is one requested service line. Both fields accept JSON numbers
// or numeric strings; an empty quantity means 1.
type LineInput struct {
	ServiceID Scalar `json:"serviceId"`
	Quantity  Scalar `json:"quantity,omitempty"`
}

// Scalar holds a line field as text. Any JSON value decodes; strings are
// unquoted and everything else keeps its raw token, so Normalize decides
// what is acceptable.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(raw)
	return nil
}

// Line is a normalized, deduplicated service line.
type Line struct {
	ServiceID uint
	Quantity  int
}

// Normalize validates every line before returning anything. Quantities are
// checked first; ids that cannot be read as positive integers are reported
// together as ServiceNotFound. Repeated ids are merged by adding quantities.
func Normalize(in []LineInput) ([]Line, error) {
	quantities := make([]int, len(in))
	var badQty []httperr.FieldError
	for i, l := range in {
		q, ok := parseQuantity(l.Quantity)
		if !ok {
			badQty = append(badQty, httperr.FieldError{
				Field: fmt.Sprintf("services[%d].quantity", i),
				Error: "must be a positive integer",
			})
			continue
		}
		quantities[i] = q
	}
	if len(badQty) > 0 {
		return nil, httperr.New(httperr.KindInvalidQuantity, "service quantity must be a positive integer").
			WithFields(badQty...)
	}

	out := make([]Line, 0, len(in))
	index := make(map[uint]int, len(in))
	var unknown []string
	for i, l := range in {
		id, ok := parseID(l.ServiceID)
		if !ok {
			unknown = append(unknown, strings.TrimSpace(string(l.ServiceID)))
			continue
		}
		if at, seen := index[id]; seen {
			out[at].Quantity += quantities[i]
			continue
		}
		index[id] = len(out)
		out = append(out, Line{ServiceID: id, Quantity: quantities[i]})
	}
	if len(unknown) > 0 {
		return nil, serviceNotFound(unknown)
	}

	for _, l := range out {
		if l.Quantity > MaxQuantity {
			return nil, httperr.New(httperr.KindInvalidQuantity, "service quantity too large").
				WithFields(httperr.FieldError{
					Field: "quantity",
					Error: fmt.Sprintf("service %d: must not exceed %d", l.ServiceID, MaxQuantity),
				})
		}
	}
	return out, nil
}

// IDs returns the service ids of lines in request order.
func IDs(lines []Line) []uint {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ServiceID
	}
	return ids
}

// EnsureAvailable checks the whole id set against the catalog rows found
// for it. Inactive services count as missing.
func EnsureAvailable(lines []Line, found []models.Service) error {
	live := make(map[uint]bool, len(found))
	for _, s := range found {
		live[s.ID] = s.Active
	}

	var missing []uint
	for _, l := range lines {
		if !live[l.ServiceID] {
			missing = append(missing, l.ServiceID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	ids := make([]string, len(missing))
	for i, id := range missing {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	return serviceNotFound(ids)
}

func serviceNotFound(ids []string) error {
	e := httperr.New(httperr.KindServiceNotFound, "services not found: "+strings.Join(ids, ", "))
	for _, id := range ids {
		e.Fields = append(e.Fields, httperr.FieldError{Field: "serviceId", Error: id})
	}
	return e
}

func parseID(n Scalar) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(string(n)), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func parseQuantity(n Scalar) (int, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 1, true
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v <= 0 || v > MaxQuantity {
		return 0, false
	}
	return int(v), true
}
