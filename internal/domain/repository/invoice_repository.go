package repository

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas GST.
// Los métodos de lectura devuelven (nil, nil) cuando no hay fila.
type InvoiceRepository interface {
	// Create inserta la factura; domain.ErrDuplicate si el número ya existe.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update reemplaza cliente, fecha, ítems y totales; domain.ErrNotFound si no existe.
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	Count(ctx context.Context) (int, error)
	// NextNumber consume el siguiente correlativo del período (YYYYMM).
	NextNumber(ctx context.Context, period string) (int, error)
	// PeekNextNumber devuelve el correlativo que tocaría sin consumirlo.
	PeekNextNumber(ctx context.Context, period string) (int, error)
	SetPDFURL(ctx context.Context, id, url string) error
}
