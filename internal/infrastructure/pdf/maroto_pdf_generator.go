package pdf

// Comprobante de reserva (una página A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMPRESA + tagline            │  BOOKING ACKNOWLEDGEMENT     │
//	│                               │  Ref + fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre / teléfono / email / dirección             │
//	│  SOLICITUD: requerimiento + fecha preferida + estado         │
//	│  DOCUMENTOS: Aadhar / Electricity Bill / Bank Passbook       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR con la referencia         │  Contacto + leyenda          │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbooking "github.com/jhoicas/azenterprise-api/internal/application/booking"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	slipGreen = &props.Color{Red: 22, Green: 163, Blue: 74}
	slipGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbooking.SlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa booking.SlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

// GenerateBookingSlip genera el comprobante de la reserva y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateBookingSlip(
	_ context.Context,
	b *entity.Booking,
	company entity.CompanyProfile,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Booking "+b.Reference, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(slipHeaderRow(b, company))
	m.AddRows(line.NewRow(1, props.Line{Color: slipGreen, Thickness: 0.5}))
	m.AddRows(section("CUSTOMER"))
	m.AddRows(field("Name", b.Name), field("Phone", b.Phone), field("Email", b.Email), field("Address", b.Address))
	m.AddRows(section("REQUEST"))
	m.AddRows(field("Requirement", b.Requirement), field("Preferred date", b.PreferredDate), field("Status", b.Status))
	m.AddRows(section("DOCUMENTS"))
	for _, dt := range entity.BookingDocTypes {
		m.AddRows(field(docLabel(dt), received(b.DocumentURL(dt))))
	}
	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: slipGray, Thickness: 0.3}))
	m.AddRows(slipFooterRow(b, company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func slipHeaderRow(b *entity.Booking, company entity.CompanyProfile) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: slipGreen, Top: 1,
			}),
			text.New(company.Tagline, props.Text{Size: 8, Top: 9, Color: slipGray}),
			text.New("GSTIN: "+company.GSTIN, props.Text{Size: 8, Top: 14, Color: slipGray}),
		),
		col.New(5).Add(
			text.New("BOOKING ACKNOWLEDGEMENT", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: slipGreen, Top: 1,
			}),
			text.New(b.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Received: "+b.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: slipGray,
			}),
		),
	)
}

func section(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: slipGreen, Top: 3}),
	))
}

func field(label, value string) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2})),
		col.New(9).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 8, Top: 1})),
	)
}

func slipFooterRow(b *entity.Booking, company entity.CompanyProfile) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(b.Reference, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Keep this reference for any follow-up about your installation.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: slipGray,
			}),
			text.New(company.Address, props.Text{Size: 8, Top: 14, Left: 3}),
			text.New("Contact: "+company.Contact, props.Text{Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3, Color: slipGreen}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func docLabel(docType string) string {
	switch docType {
	case entity.DocAadhar:
		return "Aadhar"
	case entity.DocElectricityBill:
		return "Electricity Bill"
	case entity.DocBankPassbook:
		return "Bank Passbook"
	}
	return docType
}

func received(url string) string {
	if url == "" {
		return "Pending"
	}
	return "Received"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
