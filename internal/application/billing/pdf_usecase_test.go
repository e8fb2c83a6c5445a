package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/application/billing"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

type pdfFixture struct {
	uc      *billing.PDFUseCase
	inv     *billing.InvoiceUseCase
	repo    *memInvoiceRepo
	pdf     *fakePDF
	storage *fakeStorage
}

func newPDFFixture() pdfFixture {
	inv, repo := newInvoiceUC()
	f := pdfFixture{inv: inv, repo: repo, pdf: &fakePDF{}, storage: &fakeStorage{}}
	f.uc = billing.NewPDFUseCase(repo, inv, f.pdf, fakeXML{}, f.storage, entity.DefaultCompanyProfile(), logger.Nop())
	return f
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newPDFFixture()
	ctx := context.Background()
	created, err := f.inv.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)

	pdf, name, err := f.uc.DownloadInvoicePDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-AZES20261001", string(pdf))
	assert.Equal(t, "Invoice_AZES20261001.pdf", name)
	assert.Equal(t, created.ID, f.pdf.last.ID)

	_, _, err = f.uc.DownloadInvoicePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreviewInvoicePDF_NoGuarda(t *testing.T) {
	f := newPDFFixture()

	_, name, err := f.uc.PreviewInvoicePDF(context.Background(), request(item("A", 1, 100, 18)))
	require.NoError(t, err)

	assert.Equal(t, "Invoice_DRAFT.pdf", name)
	assert.Equal(t, "118", f.pdf.last.GrandTotal.String())
	n, _ := f.repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestPreviewInvoicePDF_Validacion(t *testing.T) {
	f := newPDFFixture()
	in := request()
	in.CustomerName = ""
	_, _, err := f.uc.PreviewInvoicePDF(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPublishInvoicePDF_SubeYGuardaURL(t *testing.T) {
	f := newPDFFixture()
	ctx := context.Background()
	created, err := f.inv.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)

	res, err := f.uc.PublishInvoicePDF(ctx, created.ID)
	require.NoError(t, err)

	key := "invoices/" + created.ID + "/Invoice_AZES20261001.pdf"
	assert.Equal(t, "https://cdn.example.com/"+key, res.PDFURL)
	assert.Equal(t, "%PDF-AZES20261001", string(f.storage.keys[key]))

	stored, _ := f.repo.GetByID(ctx, created.ID)
	assert.Equal(t, res.PDFURL, stored.PDFURL)
}

func TestExportInvoiceXML_ETagEntreComillas(t *testing.T) {
	f := newPDFFixture()
	ctx := context.Background()
	created, err := f.inv.Create(ctx, request(item("A", 1, 100, 18)))
	require.NoError(t, err)

	body, etag, name, err := f.uc.ExportInvoiceXML(ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, string(body), "AZES20261001")
	assert.Equal(t, `"abc123"`, etag)
	assert.Equal(t, "AZES20261001.xml", name)
}

func TestInvoiceFilename_LimpiaCaracteres(t *testing.T) {
	assert.Equal(t, "Invoice_AZ_ES_1.pdf", billing.InvoiceFilename("AZ/ES 1"))
}
