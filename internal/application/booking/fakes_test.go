package booking_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

type memBookingRepo struct {
	mu        sync.Mutex
	byID      map[string]*entity.Booking
	createErr error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byID: map[string]*entity.Booking{}}
}

func (r *memBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	c := *b
	r.byID[b.ID] = &c
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.byID[id]; ok {
		c := *b
		return &c, nil
	}
	return nil, nil
}

func (r *memBookingRepo) List(_ context.Context, f entity.BookingFilter) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	q := strings.ToLower(f.Search)
	for _, b := range r.byID {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(b.Name+" "+b.Email+" "+b.Phone), q) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *memBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memBookingRepo) Stats(context.Context) (entity.BookingStats, error) {
	return entity.BookingStats{Total: len(r.byID)}, nil
}

type fakeStorage struct {
	mu        sync.Mutex
	puts      map[string]string // key → content type
	deleted   []string
	fail      error
	failAfter int // con fail, las primeras failAfter subidas funcionan
	calls     int
}

func (f *fakeStorage) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if f.fail != nil && (f.failAfter == 0 || f.calls >= f.failAfter) {
		return "", f.fail
	}
	f.calls++
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[key] = contentType
	return "https://files.example.com/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.puts, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeNotifier struct {
	received []*entity.Booking
	changed  []*entity.Booking
}

func (n *fakeNotifier) BookingReceived(b *entity.Booking)      { n.received = append(n.received, b) }
func (n *fakeNotifier) BookingStatusChanged(b *entity.Booking) { n.changed = append(n.changed, b) }

type fakeSlip struct{}

func (fakeSlip) GenerateBookingSlip(_ context.Context, b *entity.Booking, _ entity.CompanyProfile) ([]byte, error) {
	return []byte("%PDF-" + b.Reference), nil
}

type memCustomerRepo struct {
	summaries map[string]*entity.CustomerSummary
	bookings  map[string][]*entity.Booking
	lastQuery string
}

func (r *memCustomerRepo) ListSummaries(_ context.Context, search string, limit, _ int) ([]*entity.CustomerSummary, error) {
	r.lastQuery = search
	out := []*entity.CustomerSummary{}
	for _, s := range r.summaries {
		out = append(out, s)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.CustomerSummary, error) {
	return r.summaries[email], nil
}

func (r *memCustomerRepo) BookingsByEmail(_ context.Context, email string) ([]*entity.Booking, error) {
	return r.bookings[email], nil
}
