package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
	"github.com/jhoicas/azenterprise-api/pkg/numeric"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las líneas se guardan como JSONB en invoices.items.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// itemRecord forma JSON de una línea. Al leer se tolera cualquier valor
// numérico heredado ("2 pcs", "18%", null).
type itemRecord struct {
	Name string          `json:"name"`
	HSN  string          `json:"hsn"`
	Qty  numeric.Lenient `json:"qty"`
	Unit string          `json:"unit"`
	Rate numeric.Lenient `json:"rate"`
	GST  numeric.Lenient `json:"gst"`
}

func encodeItems(items []entity.LineItem) ([]byte, error) {
	recs := make([]itemRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, itemRecord{
			Name: it.Name,
			HSN:  it.HSNCode,
			Qty:  numeric.NewLenient(it.Quantity),
			Unit: it.Unit,
			Rate: numeric.NewLenient(it.Rate),
			GST:  numeric.NewLenient(it.GSTPercent),
		})
	}
	return json.Marshal(recs)
}

func decodeItems(raw []byte) ([]entity.LineItem, error) {
	if len(raw) == 0 {
		return []entity.LineItem{}, nil
	}
	var recs []itemRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	items := make([]entity.LineItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, entity.LineItem{
			Name:       r.Name,
			HSNCode:    r.HSN,
			Quantity:   r.Qty.Decimal,
			Unit:       r.Unit,
			Rate:       r.Rate.Decimal,
			GSTPercent: r.GST.Decimal,
		})
	}
	return items, nil
}

const invoiceColumns = `
	id, invoice_no, invoice_date, customer_name, customer_address, customer_phone, customer_gstin,
	items, subtotal, cgst_total, sgst_total, grand_total, amount_in_words, pdf_url, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var raw []byte
	if err := row.Scan(
		&inv.ID, &inv.Number, &inv.Date,
		&inv.Customer.Name, &inv.Customer.Address, &inv.Customer.Phone, &inv.Customer.GSTIN,
		&raw, &inv.Subtotal, &inv.CGSTTotal, &inv.SGSTTotal, &inv.GrandTotal,
		&inv.AmountInWords, &inv.PDFURL, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	items, err := decodeItems(raw)
	if err != nil {
		return nil, fmt.Errorf("decode items de %s: %w", inv.Number, err)
	}
	inv.Items = items
	return &inv, nil
}

// Create persiste la factura. Número repetido → domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	items, err := encodeItems(inv.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	const query = `
		INSERT INTO invoices (id, invoice_no, invoice_date, customer_name, customer_address, customer_phone, customer_gstin,
		                      items, subtotal, cgst_total, sgst_total, grand_total, amount_in_words, pdf_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.Date,
		inv.Customer.Name, inv.Customer.Address, inv.Customer.Phone, inv.Customer.GSTIN,
		items, inv.Subtotal, inv.CGSTTotal, inv.SGSTTotal, inv.GrandTotal,
		inv.AmountInWords, inv.PDFURL, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s: %w", inv.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos editables.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	const query = `
		UPDATE invoices
		SET invoice_no       = $2,
		    invoice_date     = $3,
		    customer_name    = $4,
		    customer_address = $5,
		    customer_phone   = $6,
		    customer_gstin   = $7,
		    items            = $8,
		    subtotal         = $9,
		    cgst_total       = $10,
		    sgst_total       = $11,
		    grand_total      = $12,
		    amount_in_words  = $13,
		    pdf_url          = $14,
		    updated_at       = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.Date,
		inv.Customer.Name, inv.Customer.Address, inv.Customer.Phone, inv.Customer.GSTIN,
		items, inv.Subtotal, inv.CGSTTotal, inv.SGSTTotal, inv.GrandTotal,
		inv.AmountInWords, inv.PDFURL, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s: %w", inv.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNumber obtiene una factura por su número.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_no = $1`, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// List facturas más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC, invoice_no DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := []*entity.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Count total de facturas.
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// NextNumber incrementa y devuelve el correlativo del período (atómico).
func (r *InvoiceRepo) NextNumber(ctx context.Context, period string) (int, error) {
	const query = `
		INSERT INTO invoice_sequences (period, last_value) VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE
		SET last_value = invoice_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`
	var n int
	if err := r.q.QueryRow(ctx, query, period).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number %s: %w", period, err)
	}
	return n, nil
}

// PeekNextNumber correlativo que devolvería NextNumber, sin consumirlo.
func (r *InvoiceRepo) PeekNextNumber(ctx context.Context, period string) (int, error) {
	const query = `
		SELECT COALESCE((SELECT last_value FROM invoice_sequences WHERE period = $1), 0) + 1`
	var n int
	if err := r.q.QueryRow(ctx, query, period).Scan(&n); err != nil {
		return 0, fmt.Errorf("peek invoice number %s: %w", period, err)
	}
	return n, nil
}

// SetPDFURL guarda la URL del PDF publicado.
func (r *InvoiceRepo) SetPDFURL(ctx context.Context, id, url string) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET pdf_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set invoice pdf url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
