package billing

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// previewNumber número impreso en la vista previa de una factura sin número.
const previewNumber = "DRAFT"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PDFUseCase genera el PDF de facturas guardadas o de una vista previa,
// lo publica en el almacenamiento de documentos y exporta el XML contable.
// El PDF se reconstruye siempre desde los ítems guardados.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	invoices    *InvoiceUseCase
	generator   InvoicePDFGenerator
	exporter    InvoiceXMLExporter
	storage     ports.DocumentStorage
	company     entity.CompanyProfile
	log         *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
// exporter y storage pueden ser nil: sus operaciones devuelven error.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	invoices *InvoiceUseCase,
	generator InvoicePDFGenerator,
	exporter InvoiceXMLExporter,
	storage ports.DocumentStorage,
	company entity.CompanyProfile,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		invoices:    invoices,
		generator:   generator,
		exporter:    exporter,
		storage:     storage,
		company:     company,
		log:         log,
	}
}

// DownloadInvoicePDF genera el PDF de una factura guardada.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.render(ctx, inv)
	if err != nil {
		return nil, "", err
	}
	return pdf, InvoiceFilename(inv.Number), nil
}

// PreviewInvoicePDF genera el PDF de un formulario sin guardarlo.
func (uc *PDFUseCase) PreviewInvoicePDF(ctx context.Context, in dto.InvoiceRequest) ([]byte, string, error) {
	inv, err := uc.invoices.BuildInvoice(in)
	if err != nil {
		return nil, "", err
	}
	if inv.Number == "" {
		inv.Number = previewNumber
	}
	pdf, err := uc.render(ctx, inv)
	if err != nil {
		return nil, "", err
	}
	return pdf, InvoiceFilename(inv.Number), nil
}

// PublishInvoicePDF sube el PDF al almacenamiento y guarda su URL en la factura.
func (uc *PDFUseCase) PublishInvoicePDF(ctx context.Context, invoiceID string) (*dto.PublishInvoiceResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("pdf: almacenamiento no configurado")
	}
	inv, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.render(ctx, inv)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s/%s", inv.ID, InvoiceFilename(inv.Number))
	url, err := uc.storage.Put(ctx, key, "application/pdf", bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		return nil, fmt.Errorf("pdf: publicar factura %s: %w", inv.Number, err)
	}
	if err := uc.invoiceRepo.SetPDFURL(ctx, inv.ID, url); err != nil {
		return nil, fmt.Errorf("pdf: guardar URL de %s: %w", inv.Number, err)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("number", inv.Number).Str("url", url).Msg("PDF de factura publicado")
	return &dto.PublishInvoiceResponse{ID: inv.ID, PDFURL: url}, nil
}

// ExportInvoiceXML devuelve el voucher XML de la factura, su ETag y el nombre de archivo.
func (uc *PDFUseCase) ExportInvoiceXML(ctx context.Context, invoiceID string) ([]byte, string, string, error) {
	if uc.exporter == nil {
		return nil, "", "", fmt.Errorf("xml: exportador no configurado")
	}
	inv, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", "", err
	}
	body, digest, err := uc.exporter.ExportInvoiceXML(inv, uc.company)
	if err != nil {
		return nil, "", "", fmt.Errorf("xml: exportar factura %s: %w", inv.Number, err)
	}
	name := unsafeFilename.ReplaceAllString(inv.Number, "_") + ".xml"
	return body, `"` + digest + `"`, name, nil
}

func (uc *PDFUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (uc *PDFUseCase) render(ctx context.Context, inv *entity.Invoice) ([]byte, error) {
	start := time.Now()
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv, uc.company)
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura %s: %w", inv.Number, err)
	}
	uc.log.Debug().Str("number", inv.Number).Int("items", len(inv.Items)).Int("bytes", len(pdf)).
		Dur("took", time.Since(start)).Msg("PDF de factura generado")
	return pdf, nil
}

// InvoiceFilename nombre de descarga del PDF: Invoice_{número}.pdf.
func InvoiceFilename(number string) string {
	return "Invoice_" + unsafeFilename.ReplaceAllString(number, "_") + ".pdf"
}
