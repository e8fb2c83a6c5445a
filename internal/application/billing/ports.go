package billing

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// InvoicePDFGenerator genera el PDF paginado de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, company entity.CompanyProfile) ([]byte, error)
}

// InvoiceXMLExporter exporta la factura como XML contable. Devuelve el
// documento y un digest estable del contenido (ETag).
type InvoiceXMLExporter interface {
	ExportInvoiceXML(inv *entity.Invoice, company entity.CompanyProfile) ([]byte, string, error)
}
