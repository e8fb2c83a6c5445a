package billing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/application/billing"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/pkg/numeric"
)

// 16/10/2026 10:00 IST
var fixedNow = time.Date(2026, 10, 16, 4, 30, 0, 0, time.UTC)

func newInvoiceUC() (*billing.InvoiceUseCase, *memInvoiceRepo) {
	repo := newMemInvoiceRepo()
	return billing.NewInvoiceUseCase(repo).WithClock(func() time.Time { return fixedNow }), repo
}

func item(name string, qty, rate, gst int64) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{
		Name: name,
		Qty:  numeric.NewLenient(decimal.NewFromInt(qty)),
		Rate: numeric.NewLenient(decimal.NewFromInt(rate)),
		GST:  numeric.NewLenient(decimal.NewFromInt(gst)),
	}
}

func request(items ...dto.InvoiceItemRequest) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		InvoiceDate:     "16/10/2026",
		CustomerName:    "Mohd Yousuf",
		CustomerAddress: "Main Road",
		CustomerCity:    "Handwara",
		Items:           items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalesYPalabras(t *testing.T) {
	uc, _ := newInvoiceUC()

	res, err := uc.Create(context.Background(), request(
		item("Solar Panel 540W", 1, 1000, 18),
		item("Cable", 2, 500, 5),
		item("Descartada", 0, 999, 18),
	))
	require.NoError(t, err)

	assert.Equal(t, "2000", res.Subtotal.String())
	assert.Equal(t, "115", res.CGSTTotal.String())
	assert.Equal(t, "115", res.SGSTTotal.String())
	assert.Equal(t, "2230", res.GrandTotal.String())
	assert.Equal(t, "Two Thousand Two Hundred Thirty Rupees Only", res.AmountInWords)
	assert.Len(t, res.Items, 2, "la línea con cantidad cero no se devuelve")
	assert.Equal(t, "Main Road, Handwara", res.CustomerAddress)
	assert.Equal(t, "2026-10-16", res.InvoiceDate)
}

func TestCreate_NumeracionAutomaticaPorMes(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()

	first, err := uc.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)
	second, err := uc.Create(ctx, request(item("B", 1, 100, 18)))
	require.NoError(t, err)

	assert.Equal(t, "AZES20261001", first.InvoiceNo)
	assert.Equal(t, "AZES20261002", second.InvoiceNo)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_SaltaNumerosUsadosAMano(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()

	manual := request(item("A", 1, 100, 18))
	manual.InvoiceNo = "AZES20261001"
	_, err := uc.Create(ctx, manual)
	require.NoError(t, err)

	auto, err := uc.Create(ctx, request(item("B", 1, 100, 18)))
	require.NoError(t, err)
	assert.Equal(t, "AZES20261002", auto.InvoiceNo)
}

func TestCreate_NumeroDuplicado(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()
	in := request(item("A", 1, 100, 18))
	in.InvoiceNo = "AZES20261005"

	_, err := uc.Create(ctx, in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_SinNombreDeCliente(t *testing.T) {
	uc, _ := newInvoiceUC()
	in := request(item("A", 1, 100, 18))
	in.CustomerName = "   "

	_, err := uc.Create(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, billing.MsgRequiredFields, ve.Message)
}

func TestCreate_FechaInvalida(t *testing.T) {
	uc, _ := newInvoiceUC()
	in := request()
	in.InvoiceDate = "31-31-2026"

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaVaciaEsHoyEnIST(t *testing.T) {
	uc, _ := newInvoiceUC()
	in := request()
	in.InvoiceDate = ""

	res, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", res.InvoiceDate)
}

func TestCreate_ItemsConFormatoHeredado(t *testing.T) {
	uc, _ := newInvoiceUC()
	var in dto.InvoiceRequest
	body := `{
		"customerName": "Asha",
		"items": [
			{"name": "Panel", "qty": "2 pcs", "rate": "1,000", "gst": "12%"},
			{"name": "Roto", "qty": null, "rate": {}, "gst": "x"},
			{"name": "Inverter", "qty": 1, "rate": 500.5, "gst": 18, "unit": ""}
		],
		"totalAmount": "999999"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	res, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Nos", res.Items[1].Unit)
	// 2*1000*1.12 + 500.5*1.18 = 2240 + 590.59
	assert.Equal(t, "2830.59", res.GrandTotal.String())
}

func TestCreate_DemasiadasLineas(t *testing.T) {
	uc, _ := newInvoiceUC()
	items := make([]dto.InvoiceItemRequest, billing.MaxItems+1)
	_, err := uc.Create(context.Background(), request(items...))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición, consulta y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ConservaNumeroYRecalcula(t *testing.T) {
	uc, repo := newInvoiceUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)
	require.NoError(t, repo.SetPDFURL(ctx, created.ID, "https://cdn/x.pdf"))

	updated, err := uc.Update(ctx, created.ID, request(item("A", 3, 100, 18)))
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNo, updated.InvoiceNo)
	assert.Equal(t, "354", updated.GrandTotal.String())
	assert.Empty(t, updated.PDFURL, "el PDF publicado queda obsoleto")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_SinCambiosConservaPDF(t *testing.T) {
	uc, repo := newInvoiceUC()
	ctx := context.Background()
	in := request(item("A", 1, 100, 18))
	created, err := uc.Create(ctx, in)
	require.NoError(t, err)
	require.NoError(t, repo.SetPDFURL(ctx, created.ID, "https://cdn/x.pdf"))

	updated, err := uc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.pdf", updated.PDFURL)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _ := newInvoiceUC()
	_, err := uc.Update(context.Background(), "nope", request())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetYDelete(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNo, got.InvoiceNo)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestList_PaginaYTotal(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, request(item("A", 1, 100, 18)))
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 3, res.Page.Total)
	assert.Equal(t, 2, res.Page.Limit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestPeekNextNumber_NoConsume(t *testing.T) {
	uc, _ := newInvoiceUC()
	ctx := context.Background()

	p1, err := uc.PeekNextNumber(ctx)
	require.NoError(t, err)
	p2, err := uc.PeekNextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AZES20261001", p1.InvoiceNo)
	assert.Equal(t, p1, p2)

	created, err := uc.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)
	assert.Equal(t, p1.InvoiceNo, created.InvoiceNo)
}

func TestPeriod_UsaIST(t *testing.T) {
	// 31/10/2026 20:00 UTC ya es 1/11 en India.
	assert.Equal(t, "202611", billing.Period(time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, "AZES20261107", billing.FormatInvoiceNumber("202611", 7))
	assert.Equal(t, "AZES202611123", billing.FormatInvoiceNumber("202611", 123))
}
