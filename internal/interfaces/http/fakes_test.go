package http_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// ── Facturas ─────────────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Invoice
	seq  map[string]int
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{byID: map[string]*entity.Invoice{}, seq: map[string]int{}}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byID {
		if x.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	c := *inv
	r.byID[inv.ID] = &c
	return nil
}

func (r *memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *inv
	r.byID[inv.ID] = &c
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.byID[id]; ok {
		c := *inv
		return &c, nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.byID {
		if inv.Number == number {
			c := *inv
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		c := *inv
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.Invoice{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memInvoiceRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *memInvoiceRepo) NextNumber(_ context.Context, period string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[period]++
	return r.seq[period], nil
}

func (r *memInvoiceRepo) PeekNextNumber(_ context.Context, period string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq[period] + 1, nil
}

func (r *memInvoiceRepo) SetPDFURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.PDFURL = url
	return nil
}

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ entity.CompanyProfile) ([]byte, error) {
	return []byte("%PDF-" + inv.Number), nil
}

// ── Administradores ──────────────────────────────────────────────────────────

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*entity.AdminUser
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: map[string]*entity.AdminUser{}}
}

func (r *memAdminRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins), nil
}

func (r *memAdminRepo) Create(_ context.Context, a *entity.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *a
	r.admins[a.ID] = &c
	return nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id string) (*entity.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.admins[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *memAdminRepo) SetOTP(_ context.Context, id, otpHash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.OTPHash, a.OTPExpiry = otpHash, &expiry
	return nil
}

func (r *memAdminRepo) ClearOTP(_ context.Context, id string, lastLogin time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.OTPHash, a.OTPExpiry, a.LastLogin = "", nil, &lastLogin
	return nil
}

type captureOTP struct {
	mu   sync.Mutex
	last string
}

func (c *captureOTP) SendOTP(_, otp string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = otp
}

func (c *captureOTP) code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// ── Reservas ─────────────────────────────────────────────────────────────────

type memBookingRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byID: map[string]*entity.Booking{}}
}

func (r *memBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memBookingRepo) List(_ context.Context, _ entity.BookingFilter) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Booking{}
	for _, b := range r.byID {
		c := *b
		out = append(out, &c)
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
	return entity.BookingStats{}, nil
}

type memStorage struct {
	mu   sync.Mutex
	keys []string
}

func (s *memStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}
