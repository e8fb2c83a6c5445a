package pdf

import (
	"context"
	"fmt"

	appbilling "github.com/jhoicas/azenterprise-api/internal/application/billing"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*InvoicePDFGenerator)(nil)

// InvoicePDFGenerator implementa billing.InvoicePDFGenerator: recalcula la
// factura, la pagina con LayoutInvoice y la escribe con gofpdf.
type InvoicePDFGenerator struct {
	writer *GofpdfWriter
	geo    Geometry
}

// NewInvoicePDFGenerator construye el generador con geometría A4.
func NewInvoicePDFGenerator(writer *GofpdfWriter) *InvoicePDFGenerator {
	geo := A4()
	geo.CoreFonts = !writer.UsesUTF8()
	return &InvoicePDFGenerator{writer: writer, geo: geo}
}

// GenerateInvoicePDF genera el PDF de la factura y devuelve sus bytes.
func (g *InvoicePDFGenerator) GenerateInvoicePDF(
	ctx context.Context,
	inv *entity.Invoice,
	company entity.CompanyProfile,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := NewInvoiceDocument(company, inv)
	pages := LayoutInvoice(doc, g.geo)
	out, err := g.writer.Write(pages, g.geo, fmt.Sprintf("Tax Invoice %s", inv.Number))
	if err != nil {
		return nil, fmt.Errorf("pdf: factura %s: %w", inv.Number, err)
	}
	return out, nil
}
