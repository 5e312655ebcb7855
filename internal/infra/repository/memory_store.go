package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/dog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// MemoryStore keeps every table in process. Transactions hold the store
// mutex and work on a copy that replaces the live data only on success.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
	now  func() time.Time
}

type memData struct {
	seq      map[string]uint
	users    map[uint]models.User
	dogs     map[uint]models.Dog
	services map[uint]models.Service
	bookings map[uint]models.Booking
	links    map[uint][]models.BookingService // key: booking ID
	audit    []models.AuditLog
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memData{
			seq:      make(map[string]uint),
			users:    make(map[uint]models.User),
			dogs:     make(map[uint]models.Dog),
			services: make(map[uint]models.Service),
			bookings: make(map[uint]models.Booking),
			links:    make(map[uint][]models.BookingService),
		},
		now: time.Now,
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		seq:      make(map[string]uint, len(d.seq)),
		users:    make(map[uint]models.User, len(d.users)),
		dogs:     make(map[uint]models.Dog, len(d.dogs)),
		services: make(map[uint]models.Service, len(d.services)),
		bookings: make(map[uint]models.Booking, len(d.bookings)),
		links:    make(map[uint][]models.BookingService, len(d.links)),
		audit:    append([]models.AuditLog(nil), d.audit...),
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.dogs {
		c.dogs[k] = v
	}
	for k, v := range d.services {
		c.services[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.links {
		c.links[k] = append([]models.BookingService(nil), v...)
	}
	return c
}

func (d *memData) next(table string) uint {
	d.seq[table]++
	return d.seq[table]
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) WithTx(
	_ context.Context,
	fn func(tx booking.Repository) error,
) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &MemoryStore{mu: s.mu, data: s.data.clone(), inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	defer s.lock()()
	for _, existing := range s.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return httperr.Conflict("resource already exists")
		}
	}
	u.ID = s.data.next("users")
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.data.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	defer s.lock()()
	u, ok := s.data.users[id]
	if !ok {
		return nil, httperr.NotFound("user")
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	defer s.lock()()
	for _, u := range s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.NotFound("user")
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	defer s.lock()()
	out := make([]models.User, 0, len(s.data.users))
	for _, u := range s.data.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) SaveUser(_ context.Context, u *models.User) error {
	defer s.lock()()
	if _, ok := s.data.users[u.ID]; !ok {
		return httperr.NotFound("user")
	}
	for id, existing := range s.data.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return httperr.Conflict("resource already exists")
		}
	}
	u.UpdatedAt = s.now()
	s.data.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.users[id]; !ok {
		return httperr.NotFound("user")
	}
	delete(s.data.users, id)
	for dogID, d := range s.data.dogs {
		if d.OwnerID == id {
			s.deleteDogLocked(dogID)
		}
	}
	return nil
}

// --------------------------------------------------
// Dogs
// --------------------------------------------------

func (s *MemoryStore) CreateDog(_ context.Context, d *models.Dog) error {
	defer s.lock()()
	if _, ok := s.data.users[d.OwnerID]; !ok {
		return httperr.Conflict("resource is referenced by other records")
	}
	d.ID = s.data.next("dogs")
	d.CreatedAt = s.now()
	d.UpdatedAt = d.CreatedAt
	s.data.dogs[d.ID] = *d
	return nil
}

func (s *MemoryStore) GetDog(_ context.Context, id uint) (*models.Dog, error) {
	defer s.lock()()
	d, ok := s.data.dogs[id]
	if !ok {
		return nil, httperr.NotFound("dog")
	}
	return &d, nil
}

// LockDog is GetDog; transactions already hold the store mutex.
func (s *MemoryStore) LockDog(ctx context.Context, id uint) (*models.Dog, error) {
	return s.GetDog(ctx, id)
}

func (s *MemoryStore) ListDogs(_ context.Context, ownerID *uint) ([]models.Dog, error) {
	defer s.lock()()
	out := make([]models.Dog, 0)
	for _, d := range s.data.dogs {
		if ownerID == nil || d.OwnerID == *ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) SaveDog(_ context.Context, d *models.Dog) error {
	defer s.lock()()
	if _, ok := s.data.dogs[d.ID]; !ok {
		return httperr.NotFound("dog")
	}
	d.UpdatedAt = s.now()
	s.data.dogs[d.ID] = *d
	return nil
}

func (s *MemoryStore) DeleteDog(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.dogs[id]; !ok {
		return httperr.NotFound("dog")
	}
	s.deleteDogLocked(id)
	return nil
}

func (s *MemoryStore) deleteDogLocked(id uint) {
	delete(s.data.dogs, id)
	for bookingID, b := range s.data.bookings {
		if b.DogID == id {
			delete(s.data.bookings, bookingID)
			delete(s.data.links, bookingID)
		}
	}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (s *MemoryStore) CreateService(_ context.Context, svc *models.Service) error {
	defer s.lock()()
	svc.ID = s.data.next("services")
	svc.CreatedAt = s.now()
	svc.UpdatedAt = svc.CreatedAt
	s.data.services[svc.ID] = *svc
	return nil
}

func (s *MemoryStore) GetService(_ context.Context, id uint) (*models.Service, error) {
	defer s.lock()()
	svc, ok := s.data.services[id]
	if !ok {
		return nil, httperr.NotFound("service")
	}
	return &svc, nil
}

func (s *MemoryStore) ListServices(_ context.Context, activeOnly bool) ([]models.Service, error) {
	defer s.lock()()
	out := make([]models.Service, 0, len(s.data.services))
	for _, svc := range s.data.services {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) FindServices(_ context.Context, ids []uint) ([]models.Service, error) {
	defer s.lock()()
	var out []models.Service
	for _, id := range ids {
		if svc, ok := s.data.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveService(_ context.Context, svc *models.Service) error {
	defer s.lock()()
	if _, ok := s.data.services[svc.ID]; !ok {
		return httperr.NotFound("service")
	}
	svc.UpdatedAt = s.now()
	s.data.services[svc.ID] = *svc
	return nil
}

func (s *MemoryStore) DeleteService(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.services[id]; !ok {
		return httperr.NotFound("service")
	}
	for _, rows := range s.data.links {
		for _, r := range rows {
			if r.ServiceID == id {
				return httperr.Conflict("resource is referenced by other records")
			}
		}
	}
	delete(s.data.services, id)
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *MemoryStore) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	defer s.lock()()
	b, ok := s.data.bookings[id]
	if !ok {
		return nil, httperr.NotFound("booking")
	}
	return &b, nil
}

func (s *MemoryStore) ListBookings(_ context.Context, ownerID *uint) ([]models.Booking, error) {
	defer s.lock()()
	out := make([]models.Booking, 0)
	for _, b := range s.data.bookings {
		if ownerID != nil && s.data.dogs[b.DogID].OwnerID != *ownerID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CheckInTime.Equal(out[j].CheckInTime) {
			return out[i].CheckInTime.Before(out[j].CheckInTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) ListActiveBookingsForDog(
	_ context.Context,
	dogID uint,
	date time.Time,
	excludeID uint,
) ([]models.Booking, error) {
	defer s.lock()()
	var out []models.Booking
	for _, b := range s.data.bookings {
		if b.DogID != dogID || b.ID == excludeID || !b.Date.Equal(date) {
			continue
		}
		if !booking.Status(b.Status).IsActive() {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.Before(out[j].CheckInTime) })
	return out, nil
}

func (s *MemoryStore) CreateBooking(_ context.Context, b *models.Booking) error {
	defer s.lock()()
	if _, ok := s.data.dogs[b.DogID]; !ok {
		return httperr.Conflict("resource is referenced by other records")
	}
	b.ID = s.data.next("bookings")
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.data.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) SaveBooking(_ context.Context, b *models.Booking) error {
	defer s.lock()()
	if _, ok := s.data.bookings[b.ID]; !ok {
		return httperr.NotFound("booking")
	}
	b.UpdatedAt = s.now()
	s.data.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) DeleteBooking(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.bookings[id]; !ok {
		return httperr.NotFound("booking")
	}
	delete(s.data.bookings, id)
	delete(s.data.links, id)
	return nil
}

func (s *MemoryStore) SetGrandTotal(_ context.Context, bookingID uint, total decimal.Decimal) error {
	defer s.lock()()
	b, ok := s.data.bookings[bookingID]
	if !ok {
		return httperr.NotFound("booking")
	}
	b.GrandTotal = total
	s.data.bookings[bookingID] = b
	return nil
}

func (s *MemoryStore) ClearBookingServices(_ context.Context, bookingID uint) error {
	defer s.lock()()
	delete(s.data.links, bookingID)
	return nil
}

func (s *MemoryStore) AddBookingServices(_ context.Context, rows []models.BookingService) error {
	defer s.lock()()
	for _, r := range rows {
		if _, ok := s.data.bookings[r.BookingID]; !ok {
			return httperr.Conflict("resource is referenced by other records")
		}
		if _, ok := s.data.services[r.ServiceID]; !ok {
			return httperr.Conflict("resource is referenced by other records")
		}
		for _, existing := range s.data.links[r.BookingID] {
			if existing.ServiceID == r.ServiceID {
				return httperr.Conflict("resource already exists")
			}
		}
		r.Service = models.Service{}
		s.data.links[r.BookingID] = append(s.data.links[r.BookingID], r)
	}
	return nil
}

func (s *MemoryStore) ListBookingServices(_ context.Context, bookingIDs ...uint) ([]models.BookingService, error) {
	defer s.lock()()
	var out []models.BookingService
	for _, id := range bookingIDs {
		for _, r := range s.data.links[id] {
			r.Service = s.data.services[r.ServiceID]
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BookingID != out[j].BookingID {
			return out[i].BookingID < out[j].BookingID
		}
		return out[i].ServiceID < out[j].ServiceID
	})
	return out, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *MemoryStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	defer s.lock()()
	l.ID = s.data.next("audit_logs")
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	s.data.audit = append(s.data.audit, *l)
	return nil
}

func (s *MemoryStore) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	defer s.lock()()
	var matched []models.AuditLog
	for i := len(s.data.audit) - 1; i >= 0; i-- {
		l := s.data.audit[i]
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := min(f.Offset, len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) DeleteAuditLogsBefore(_ context.Context, before time.Time) (int64, error) {
	defer s.lock()()
	kept := make([]models.AuditLog, 0, len(s.data.audit))
	var n int64
	for _, l := range s.data.audit {
		if l.CreatedAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, l)
	}
	s.data.audit = kept
	return n, nil
}

var (
	_ booking.Repository = (*MemoryStore)(nil)
	_ dog.Repository     = (*MemoryStore)(nil)
	_ catalog.Repository = (*MemoryStore)(nil)
	_ account.Repository = (*MemoryStore)(nil)
	_ audit.Store        = (*MemoryStore)(nil)
)
