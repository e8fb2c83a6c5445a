// Package pdf genera los PDF del negocio: la factura GST (layout paginado
// propio + gofpdf) y el comprobante de reserva (maroto).
//
// La factura se arma en dos pasos. LayoutInvoice es una función pura que
// reparte el contenido en páginas A4 como primitivas posicionadas (texto,
// rectángulo, línea); GofpdfWriter convierte esas páginas en bytes PDF.
// Los tests verifican la paginación sobre las primitivas, sin motor PDF.
//
//	┌──────────────────────────────────────────────┐
//	│  EMPRESA + GSTIN + dirección  (cada página)  │
//	│  TAX INVOICE                                 │
//	│  N° / Fecha        │  Bill To  (solo pág. 1) │
//	│  ┌────────────────────────────────────────┐  │
//	│  │ S.No │ Particulars │ HSN │ ... │ Amount│  │  ← se repite por página
//	│  │ filas (nunca se parten)                │  │
//	│  └────────────────────────────────────────┘  │
//	│  TOTALES + palabras + banco + T&C + firma    │  ← bloque atómico
//	│                 Page i of N                  │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

// ── Primitivas ────────────────────────────────────────────────────────────────

// OpKind tipo de primitiva.
type OpKind int

const (
	OpText OpKind = iota
	OpRect
	OpLine
)

// Grupos de primitivas. Las filas usan "row-N" con N = número de serie.
const (
	GroupCompanyHeader = "company-header"
	GroupBillTo        = "bill-to"
	GroupTableHeader   = "table-header"
	GroupTableBorder   = "table-border"
	GroupTotals        = "totals"
	GroupPageFooter    = "page-footer"
	groupRowPrefix     = "row-"
)

// RowGroup devuelve el grupo de la fila con número de serie n.
func RowGroup(n int) string { return fmt.Sprintf("%s%d", groupRowPrefix, n) }

// IsRowGroup indica si g es el grupo de una fila de la tabla.
func IsRowGroup(g string) bool { return strings.HasPrefix(g, groupRowPrefix) }

// RGB color de 8 bits por canal.
type RGB struct{ R, G, B uint8 }

var (
	colorGreen  = RGB{22, 163, 74}
	colorStripe = RGB{240, 253, 244}
	colorText   = RGB{51, 51, 51}
	colorGray   = RGB{100, 100, 100}
	colorWhite  = RGB{255, 255, 255}
)

// DrawOp primitiva posicionada en puntos, origen arriba a la izquierda.
//
//   - OpText: Text en (X, Y) con Y = borde superior; W > 0 acota el ancho
//     para Align "C"/"R". H es la altura de línea.
//   - OpRect: rectángulo (X, Y, W, H) relleno con Fill y/o trazado con Stroke.
//   - OpLine: segmento de (X, Y) a (X+W, Y+H).
type DrawOp struct {
	Kind      OpKind
	Group     string
	X, Y      float64
	W, H      float64
	Text      string
	Size      float64
	Style     string // "" o "B"
	Align     string // "L", "C", "R"
	Color     RGB
	Fill      *RGB
	Stroke    *RGB
	LineWidth float64
}

// Bottom coordenada inferior ocupada por la primitiva.
func (op DrawOp) Bottom() float64 {
	if op.Kind == OpLine && op.H < 0 {
		return op.Y
	}
	return op.Y + op.H
}

// Page página con sus primitivas en orden de dibujo.
type Page struct {
	Number int
	Ops    []DrawOp
}

// Geometry dimensiones de página en puntos.
type Geometry struct {
	Width             float64
	Height            float64
	Margin            float64
	TableHeaderHeight float64
	RowHeight         float64
	// CoreFonts indica que el writer usa fuentes core: "₹" se dibuja como
	// "Rs." y los anchos se miden así.
	CoreFonts bool
}

// A4 geometría por defecto: A4 vertical, márgenes de 40pt, cabecera de
// tabla de 20pt y filas de 18pt.
func A4() Geometry {
	return Geometry{
		Width:             595.28,
		Height:            841.89,
		Margin:            40,
		TableHeaderHeight: 20,
		RowHeight:         18,
	}
}

// ContentWidth ancho útil entre márgenes.
func (g Geometry) ContentWidth() float64 { return g.Width - 2*g.Margin }

// Bottom límite inferior del contenido.
func (g Geometry) Bottom() float64 { return g.Height - g.Margin }

// ── Documento de entrada ──────────────────────────────────────────────────────

// InvoiceDocument vista inmutable de una factura lista para dibujar.
type InvoiceDocument struct {
	Company       entity.CompanyProfile
	Number        string
	Date          time.Time
	Customer      entity.BillTo
	Lines         []gst.Line
	Totals        gst.Totals
	AmountInWords string
}

// NewInvoiceDocument recalcula líneas, totales y palabras a partir de los
// ítems guardados; lo persistido en la factura no se usa para los importes.
func NewInvoiceDocument(company entity.CompanyProfile, inv *entity.Invoice) InvoiceDocument {
	res := gst.Compute(inv.Items)
	return InvoiceDocument{
		Company:       company,
		Number:        inv.Number,
		Date:          inv.Date,
		Customer:      inv.Customer,
		Lines:         res.Lines,
		Totals:        res.Totals,
		AmountInWords: rupee.Words(res.Totals.GrandTotal),
	}
}

// ── Alturas de bloques ────────────────────────────────────────────────────────

const (
	companyHeaderHeight = 122
	billToMinHeight     = 80
	billToPadding       = 8
	billToLineHeight    = 12
	billToFieldGap      = 2
	maxAddressLines     = 6
	tableGap            = 10

	totalsGap        = 10
	totalsLineHeight = 18
	wordsHeight      = 25
	bankHeight       = 61
	termsTitle       = 15
	termLineHeight   = 12
	termsTail        = 10
	signatureHeight  = 60
)

// TotalsBlockHeight altura del bloque final (totales, palabras, banco,
// condiciones y firma) para n condiciones.
func TotalsBlockHeight(n int) float64 {
	return totalsGap + 4*totalsLineHeight + wordsHeight + bankHeight +
		termsTitle + float64(n)*termLineHeight + termsTail + signatureHeight
}

// ── Columnas ──────────────────────────────────────────────────────────────────

type column struct {
	title   string
	x, w    float64
	align   string
	numeric bool // importes y códigos: se achica la fuente en vez de recortar
}

var (
	columnTitles  = []string{"S.No", "Particulars", "HSN", "Qty", "Unit", "Rate", "GST%", "CGST", "SGST", "Amount"}
	columnWeights = []float64{30, 100, 45, 30, 30, 55, 35, 45, 45, 60}
)

func columns(g Geometry) []column {
	var total float64
	for _, w := range columnWeights {
		total += w
	}
	scale := g.ContentWidth() / total
	cols := make([]column, len(columnTitles))
	x := g.Margin
	for i, t := range columnTitles {
		a := "C"
		if i == 1 {
			a = "L"
		}
		cols[i] = column{title: t, x: x, w: columnWeights[i] * scale, align: a, numeric: i != 1 && i != 4}
		x += cols[i].w
	}
	return cols
}

// ── Máquina de estados ────────────────────────────────────────────────────────

type layouter struct {
	geo   Geometry
	doc   InvoiceDocument
	cols  []column
	m     metrics
	pages []Page

	y          float64
	fresh      bool // la página solo tiene cabecera (y bill-to)
	tableTop   float64
	rowsOnPage int
}

// LayoutInvoice reparte la factura en páginas. Es determinista y no hace I/O.
//
// Estados por página: cabecera de empresa (bill-to solo en la primera) →
// cabecera de tabla (si no cabe cabecera + una fila se pasa de página) →
// filas (la fila que cruzaría el margen inferior cierra el borde y abre
// página nueva con cabecera y tabla) → bloque de totales (se mueve entero a
// una página nueva si no cabe). Al final se numeran las páginas.
func LayoutInvoice(doc InvoiceDocument, geo Geometry) []Page {
	l := &layouter{geo: geo, doc: doc, cols: columns(geo), m: metrics{core: geo.CoreFonts}}

	l.newPage()
	l.openTable()
	for i, line := range doc.Lines {
		l.emitRow(i, line)
	}
	l.closeTable()
	l.drawTotals()
	l.drawFooters()
	return l.pages
}

func (l *layouter) page() *Page { return &l.pages[len(l.pages)-1] }

func (l *layouter) add(op DrawOp) {
	p := l.page()
	p.Ops = append(p.Ops, op)
}

func (l *layouter) newPage() {
	l.pages = append(l.pages, Page{Number: len(l.pages) + 1})
	l.y = l.geo.Margin
	l.drawCompanyHeader()
	if len(l.pages) == 1 {
		l.drawBillTo()
	}
	l.fresh = true
	l.rowsOnPage = 0
}

func (l *layouter) openTable() {
	need := tableGap + l.geo.TableHeaderHeight + l.geo.RowHeight
	if !l.fresh && l.y+need > l.geo.Bottom() {
		l.newPage()
	}
	l.y += tableGap
	l.tableTop = l.y
	l.drawTableHeader()
	l.y += l.geo.TableHeaderHeight
	l.fresh = false
	l.rowsOnPage = 0
}

func (l *layouter) emitRow(i int, line gst.Line) {
	if l.rowsOnPage > 0 && l.y+l.geo.RowHeight > l.geo.Bottom() {
		l.closeTable()
		l.newPage()
		l.openTable()
	}
	l.drawRow(i, line)
	l.y += l.geo.RowHeight
	l.rowsOnPage++
}

func (l *layouter) closeTable() {
	green := colorGreen
	l.add(DrawOp{
		Kind: OpRect, Group: GroupTableBorder,
		X: l.geo.Margin, Y: l.tableTop, W: l.geo.ContentWidth(), H: l.y - l.tableTop,
		Stroke: &green, LineWidth: 1,
	})
}

func (l *layouter) drawTotals() {
	if !l.fresh && l.y+TotalsBlockHeight(len(l.doc.Company.Terms)) > l.geo.Bottom() {
		l.newPage()
	}
	l.drawTotalsBlock()
	l.fresh = false
}

func (l *layouter) drawFooters() {
	n := len(l.pages)
	for i := range l.pages {
		l.pages[i].Ops = append(l.pages[i].Ops, DrawOp{
			Kind: OpText, Group: GroupPageFooter,
			X: l.geo.Margin, Y: l.geo.Bottom() + 14, W: l.geo.ContentWidth(), H: 10,
			Text: fmt.Sprintf("Page %d of %d", i+1, n), Size: 8, Align: "C", Color: colorGray,
		})
	}
}
