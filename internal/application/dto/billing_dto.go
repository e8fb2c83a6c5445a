package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/pkg/numeric"
)

// InvoiceRequest body para POST /api/invoices, PUT /api/invoices/:id y
// POST /api/invoices/generate-pdf. Los nombres son los del formulario del
// panel; los totales que envíe el cliente se ignoran y se recalculan.
type InvoiceRequest struct {
	InvoiceNo       string               `json:"invoiceNo"`   // vacío = se asigna el siguiente correlativo
	InvoiceDate     string               `json:"invoiceDate"` // DD/MM/YYYY o YYYY-MM-DD; vacío = hoy
	CustomerName    string               `json:"customerName"`
	CustomerAddress string               `json:"customerAddress"`
	CustomerCity    string               `json:"customerCity"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerGSTIN   string               `json:"customerGstin"`
	Items           []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea tal como la guarda el formulario. Los números
// aceptan string o número; lo que no se puede leer vale cero.
type InvoiceItemRequest struct {
	Name string          `json:"name"`
	HSN  string          `json:"hsn"`
	Qty  numeric.Lenient `json:"qty"`
	Unit string          `json:"unit"`
	Rate numeric.Lenient `json:"rate"`
	GST  numeric.Lenient `json:"gst"`
}

// ToEntity convierte la línea al modelo de dominio.
func (r InvoiceItemRequest) ToEntity() entity.LineItem {
	return entity.LineItem{
		Name:       r.Name,
		HSNCode:    r.HSN,
		Quantity:   r.Qty.Decimal,
		Unit:       r.Unit,
		Rate:       r.Rate.Decimal,
		GSTPercent: r.GST.Decimal,
	}
}

// BillTo arma el bloque del cliente; dirección y ciudad se unen con ", ".
func (r InvoiceRequest) BillTo() entity.BillTo {
	parts := make([]string, 0, 2)
	for _, p := range []string{r.CustomerAddress, r.CustomerCity} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return entity.BillTo{
		Name:    strings.TrimSpace(r.CustomerName),
		Address: strings.Join(parts, ", "),
		Phone:   strings.TrimSpace(r.CustomerPhone),
		GSTIN:   strings.ToUpper(strings.TrimSpace(r.CustomerGSTIN)),
	}
}

// LineItems convierte todas las líneas (las de cantidad cero incluidas;
// el calculador las descarta).
func (r InvoiceRequest) LineItems() []entity.LineItem {
	out := make([]entity.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ToEntity())
	}
	return out
}

// InvoiceItemResponse línea con sus importes derivados.
type InvoiceItemResponse struct {
	SNo    int             `json:"s_no"`
	Name   string          `json:"name"`
	HSN    string          `json:"hsn"`
	Qty    decimal.Decimal `json:"qty"`
	Unit   string          `json:"unit"`
	Rate   decimal.Decimal `json:"rate"`
	GST    decimal.Decimal `json:"gst"`
	Amount decimal.Decimal `json:"amount"`
	CGST   decimal.Decimal `json:"cgst"`
	SGST   decimal.Decimal `json:"sgst"`
	Total  decimal.Decimal `json:"total"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNo       string                `json:"invoice_no"`
	InvoiceDate     string                `json:"invoice_date"` // YYYY-MM-DD
	CustomerName    string                `json:"customer_name"`
	CustomerAddress string                `json:"customer_address"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
	CustomerGSTIN   string                `json:"customer_gstin,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	CGSTTotal       decimal.Decimal       `json:"cgst_total"`
	SGSTTotal       decimal.Decimal       `json:"sgst_total"`
	GrandTotal      decimal.Decimal       `json:"grand_total"`
	AmountInWords   string                `json:"amount_in_words"`
	PDFURL          string                `json:"pdf_url,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// InvoiceSummaryResponse fila del listado de facturas.
type InvoiceSummaryResponse struct {
	ID           string          `json:"id"`
	InvoiceNo    string          `json:"invoice_no"`
	InvoiceDate  string          `json:"invoice_date"`
	CustomerName string          `json:"customer_name"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	PDFURL       string          `json:"pdf_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// NextInvoiceNumberResponse respuesta de GET /api/invoices/next/number.
type NextInvoiceNumberResponse struct {
	InvoiceNo string `json:"invoice_no"`
}

// PublishInvoiceResponse respuesta de POST /api/invoices/:id/publish.
type PublishInvoiceResponse struct {
	ID     string `json:"id"`
	PDFURL string `json:"pdf_url"`
}

// NewInvoiceResponse mapea la entidad; las líneas se recalculan para
// devolver sus importes.
func NewInvoiceResponse(inv *entity.Invoice) *InvoiceResponse {
	res := gst.Compute(inv.Items)
	items := make([]InvoiceItemResponse, 0, len(res.Lines))
	for _, l := range res.Lines {
		items = append(items, InvoiceItemResponse{
			SNo:    l.Serial,
			Name:   l.Item.Name,
			HSN:    l.Item.HSNCode,
			Qty:    l.Item.Quantity,
			Unit:   l.Item.Unit,
			Rate:   l.Item.Rate,
			GST:    l.Item.GSTPercent,
			Amount: l.Amount.Round(2),
			CGST:   l.CGST.Round(2),
			SGST:   l.SGST.Round(2),
			Total:  l.LineTotal.Round(2),
		})
	}
	return &InvoiceResponse{
		ID:              inv.ID,
		InvoiceNo:       inv.Number,
		InvoiceDate:     inv.Date.Format(time.DateOnly),
		CustomerName:    inv.Customer.Name,
		CustomerAddress: inv.Customer.Address,
		CustomerPhone:   inv.Customer.Phone,
		CustomerGSTIN:   inv.Customer.GSTIN,
		Items:           items,
		Subtotal:        inv.Subtotal.Round(2),
		CGSTTotal:       inv.CGSTTotal.Round(2),
		SGSTTotal:       inv.SGSTTotal.Round(2),
		GrandTotal:      inv.GrandTotal.Round(2),
		AmountInWords:   inv.AmountInWords,
		PDFURL:          inv.PDFURL,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// NewInvoiceSummary mapea la entidad a una fila del listado.
func NewInvoiceSummary(inv *entity.Invoice) InvoiceSummaryResponse {
	return InvoiceSummaryResponse{
		ID:           inv.ID,
		InvoiceNo:    inv.Number,
		InvoiceDate:  inv.Date.Format(time.DateOnly),
		CustomerName: inv.Customer.Name,
		GrandTotal:   inv.GrandTotal.Round(2),
		PDFURL:       inv.PDFURL,
		CreatedAt:    inv.CreatedAt,
	}
}
