package billing_test

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// memInvoiceRepo InvoiceRepository en memoria con la misma semántica que el
// adaptador Postgres (número único, correlativo por período).
type memInvoiceRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Invoice
	seq  map[string]int
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{byID: map[string]*entity.Invoice{}, seq: map[string]int{}}
}

func clone(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.Items = append([]entity.LineItem(nil), inv.Items...)
	return &c
}

func (r *memInvoiceRepo) numberTaken(number, exceptID string) bool {
	for id, inv := range r.byID {
		if inv.Number == number && id != exceptID {
			return true
		}
	}
	return false
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numberTaken(inv.Number, "") {
		return domain.ErrDuplicate
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	r.byID[inv.ID] = clone(inv)
	return nil
}

func (r *memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.numberTaken(inv.Number, inv.ID) {
		return domain.ErrDuplicate
	}
	r.byID[inv.ID] = clone(inv)
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
		return clone(inv), nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.byID {
		if inv.Number == number {
			return clone(inv), nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		all = append(all, clone(inv))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*entity.Invoice{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
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

// ── Colaboradores ─────────────────────────────────────────────────────────────

type fakePDF struct {
	last *entity.Invoice
}

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ entity.CompanyProfile) ([]byte, error) {
	f.last = inv
	return []byte("%PDF-" + inv.Number), nil
}

type fakeXML struct{}

func (fakeXML) ExportInvoiceXML(inv *entity.Invoice, _ entity.CompanyProfile) ([]byte, string, error) {
	return []byte("<ENVELOPE>" + inv.Number + "</ENVELOPE>"), "abc123", nil
}

type fakeStorage struct {
	keys map[string][]byte
}

func (f *fakeStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if f.keys == nil {
		f.keys = map[string][]byte{}
	}
	f.keys[key] = b
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.keys, key)
	return nil
}
