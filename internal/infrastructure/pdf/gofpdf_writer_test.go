package pdf_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/pdf"
)

func TestGofpdfWriter_FuenteCoreGeneraPDF(t *testing.T) {
	w, err := pdf.NewGofpdfWriter("", "", "azenterprise-test")
	require.NoError(t, err)
	assert.False(t, w.UsesUTF8())

	geo := pdf.A4()
	pages := pdf.LayoutInvoice(pdf.NewInvoiceDocument(entity.DefaultCompanyProfile(), invoiceWith(45)), geo)
	require.Greater(t, len(pages), 1)

	out, err := w.Write(pages, geo, "Tax Invoice AZES20261001")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "debe empezar con la cabecera PDF")
	assert.Contains(t, string(out), "%%EOF")
}

func TestGofpdfWriter_FuenteInexistenteRetornaError(t *testing.T) {
	_, err := pdf.NewGofpdfWriter(filepath.Join(t.TempDir(), "no-existe.ttf"), "", "")
	assert.Error(t, err)
}

func TestInvoicePDFGenerator_GeneraBytes(t *testing.T) {
	w, err := pdf.NewGofpdfWriter("", "", "")
	require.NoError(t, err)
	gen := pdf.NewInvoicePDFGenerator(w)

	out, err := gen.GenerateInvoicePDF(context.Background(), invoiceWith(3), entity.DefaultCompanyProfile())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestInvoicePDFGenerator_ContextoCanceladoNoGenera(t *testing.T) {
	w, err := pdf.NewGofpdfWriter("", "", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = pdf.NewInvoicePDFGenerator(w).GenerateInvoicePDF(ctx, invoiceWith(1), entity.DefaultCompanyProfile())
	assert.ErrorIs(t, err, context.Canceled)
}
