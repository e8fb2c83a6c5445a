package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

// Mensajes de validación visibles en el panel.
const (
	MsgRequiredFields = "Invoice Number and Customer Name are required"
	MsgInvalidDate    = "Invoice Date must be DD/MM/YYYY or YYYY-MM-DD"
)

// MaxItems límite de líneas por factura.
const MaxItems = 500

// numberAttempts reintentos al asignar número si otro alta ganó la carrera
// o si alguien usó a mano el número que tocaba.
const numberAttempts = 5

var dateLayouts = []string{"02/01/2006", time.DateOnly, time.RFC3339}

// InvoiceUseCase alta, edición, consulta y numeración de facturas.
// Los totales y el importe en palabras siempre se recalculan desde los ítems.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// BuildInvoice valida la entrada y arma la entidad con totales calculados.
// No asigna número ni persiste; lo usan el alta, la edición y la vista previa.
func (uc *InvoiceUseCase) BuildInvoice(in dto.InvoiceRequest) (*entity.Invoice, error) {
	customer := in.BillTo()
	if customer.Name == "" {
		return nil, domain.NewValidationError(MsgRequiredFields)
	}
	if len(in.Items) > MaxItems {
		return nil, domain.NewValidationError(fmt.Sprintf("An invoice can have at most %d items", MaxItems))
	}
	date, err := uc.parseDate(in.InvoiceDate)
	if err != nil {
		return nil, err
	}

	items := in.LineItems()
	for i := range items {
		items[i] = items[i].Normalized()
	}
	inv := &entity.Invoice{
		Number:   strings.TrimSpace(in.InvoiceNo),
		Date:     date,
		Customer: customer,
		Items:    items,
	}
	applyTotals(inv)
	return inv, nil
}

// Create guarda una factura nueva. Sin número se asigna el siguiente
// correlativo del mes; con número se respeta y debe ser único.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.BuildInvoice(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	inv.CreatedAt, inv.UpdatedAt = now, now

	if inv.Number != "" {
		if err := uc.repo.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("crear factura %s: %w", inv.Number, err)
		}
		return dto.NewInvoiceResponse(inv), nil
	}

	period := Period(now)
	for attempt := 0; attempt < numberAttempts; attempt++ {
		seq, err := uc.repo.NextNumber(ctx, period)
		if err != nil {
			return nil, fmt.Errorf("asignar número de factura: %w", err)
		}
		inv.Number = FormatInvoiceNumber(period, seq)
		err = uc.repo.Create(ctx, inv)
		if err == nil {
			return dto.NewInvoiceResponse(inv), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("crear factura %s: %w", inv.Number, err)
		}
		inv.ID = ""
	}
	return nil, fmt.Errorf("asignar número de factura en %s: %w", period, domain.ErrConflict)
}

// Update reemplaza los datos de la factura. Sin número se conserva el actual.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	inv, err := uc.BuildInvoice(in)
	if err != nil {
		return nil, err
	}
	inv.ID = current.ID
	if inv.Number == "" {
		inv.Number = current.Number
	}
	inv.PDFURL = current.PDFURL
	inv.CreatedAt = current.CreatedAt
	inv.UpdatedAt = uc.now()

	// El PDF publicado ya no corresponde a los datos nuevos.
	if inv.PDFURL != "" && !sameContent(current, inv) {
		inv.PDFURL = ""
	}

	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("actualizar factura %s: %w", id, err)
	}
	return dto.NewInvoiceResponse(inv), nil
}

// Delete elimina la factura.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar factura %s: %w", id, err)
	}
	return nil
}

// Get devuelve la factura con sus líneas calculadas.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewInvoiceResponse(inv), nil
}

// List devuelve las facturas más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar facturas: %w", err)
	}
	items := make([]dto.InvoiceSummaryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, dto.NewInvoiceSummary(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// PeekNextNumber número que recibiría la próxima factura sin número. No lo
// reserva: dos formularios abiertos a la vez ven el mismo valor y el alta
// asigna el definitivo.
func (uc *InvoiceUseCase) PeekNextNumber(ctx context.Context) (*dto.NextInvoiceNumberResponse, error) {
	period := Period(uc.now())
	seq, err := uc.repo.PeekNextNumber(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("consultar correlativo: %w", err)
	}
	return &dto.NextInvoiceNumberResponse{InvoiceNo: FormatInvoiceNumber(period, seq)}, nil
}

func (uc *InvoiceUseCase) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		n := uc.now().In(IST)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, domain.NewValidationError(MsgInvalidDate)
}

// applyTotals recalcula totales y palabras desde los ítems.
func applyTotals(inv *entity.Invoice) {
	res := gst.Compute(inv.Items)
	inv.Subtotal = res.Totals.Subtotal
	inv.CGSTTotal = res.Totals.CGSTTotal
	inv.SGSTTotal = res.Totals.SGSTTotal
	inv.GrandTotal = res.Totals.GrandTotal
	inv.AmountInWords = rupee.Words(res.Totals.GrandTotal)
}

func sameContent(a, b *entity.Invoice) bool {
	if a.Number != b.Number || !a.Date.Equal(b.Date) || a.Customer != b.Customer || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		x, y := a.Items[i], b.Items[i]
		if x.Name != y.Name || x.HSNCode != y.HSNCode || x.Unit != y.Unit ||
			!x.Quantity.Equal(y.Quantity) || !x.Rate.Equal(y.Rate) || !x.GSTPercent.Equal(y.GSTPercent) {
			return false
		}
	}
	return true
}
