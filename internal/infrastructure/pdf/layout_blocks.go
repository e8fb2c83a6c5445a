package pdf

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

// text agrega un texto de una línea. Si w > 0 el texto se recorta a ese ancho.
func (l *layouter) text(group string, x, y, w float64, s string, size float64, style, align string, color RGB) {
	if w > 0 {
		s = l.m.fit(s, w, size, style)
	}
	l.put(group, x, y, w, s, size, style, align, color)
}

// value agrega un importe o código completo; si no entra en w se achica la fuente.
func (l *layouter) value(group string, x, y, w float64, s string, size float64, style, align string, color RGB) {
	l.put(group, x, y, w, s, l.m.fitSize(s, w, size, style), style, align, color)
}

func (l *layouter) put(group string, x, y, w float64, s string, size float64, style, align string, color RGB) {
	l.add(DrawOp{
		Kind: OpText, Group: group,
		X: x, Y: y, W: w, H: size * 1.2,
		Text: s, Size: size, Style: style, Align: align, Color: color,
	})
}

func (l *layouter) drawCompanyHeader() {
	c := l.doc.Company
	x, w, y0 := l.geo.Margin, l.geo.ContentWidth(), l.y
	g := GroupCompanyHeader

	l.text(g, x, y0, w, c.Name, 20, "B", "C", colorGreen)
	l.text(g, x, y0+24, w, c.Tagline, 10, "", "C", colorText)
	l.text(g, x, y0+38, w, "GSTIN: "+c.GSTIN, 9, "", "C", colorText)
	l.text(g, x, y0+50, w, c.Address, 9, "", "C", colorText)
	l.text(g, x, y0+62, w, "Contact: "+c.Contact, 9, "", "C", colorText)

	green := colorGreen
	l.add(DrawOp{Kind: OpLine, Group: g, X: x, Y: y0 + 82, W: w, Stroke: &green, LineWidth: 1})
	l.text(g, x, y0+92, w, "TAX INVOICE", 16, "B", "C", colorGreen)

	l.y = y0 + companyHeaderHeight
}

func (l *layouter) drawBillTo() {
	d := l.doc
	left := l.geo.Margin + 10
	right := l.geo.Margin + 280
	rw := l.geo.ContentWidth() - 280
	y0 := l.y
	g := GroupBillTo

	l.text(g, left, y0, 250, "Invoice No: "+d.Number, 10, "", "L", colorText)
	l.text(g, left, y0+15, 250, "Date: "+d.Date.Format("02/01/2006"), 10, "", "L", colorText)

	l.text(g, right, y0, rw, "Bill To:", 10, "", "L", colorText)
	l.text(g, right, y0+15, rw, d.Customer.Name, 10, "B", "L", colorText)
	y := y0 + 30
	for _, s := range []string{
		d.Customer.Address,
		prefixed("Phone: ", d.Customer.Phone),
		prefixed("GSTIN: ", d.Customer.GSTIN),
	} {
		if s == "" {
			continue
		}
		for _, line := range l.wrapLines(s, rw, 9) {
			l.text(g, right, y, rw, line, 9, "", "L", colorText)
			y += billToLineHeight
		}
		y += billToFieldGap
	}

	l.y = max(y0+billToMinHeight, y+billToPadding)
}

// wrapLines parte s en como mucho maxAddressLines líneas; el resto se
// resume con "..." en la última.
func (l *layouter) wrapLines(s string, w, size float64) []string {
	lines := l.m.wrap(s, w, size, "")
	if len(lines) <= maxAddressLines {
		return lines
	}
	last := strings.Join(lines[maxAddressLines-1:], " ")
	lines = lines[:maxAddressLines]
	lines[maxAddressLines-1] = l.m.fit(last, w, size, "")
	return lines
}

func (l *layouter) drawTableHeader() {
	green := colorGreen
	y := l.tableTop
	l.add(DrawOp{
		Kind: OpRect, Group: GroupTableHeader,
		X: l.geo.Margin, Y: y, W: l.geo.ContentWidth(), H: l.geo.TableHeaderHeight,
		Fill: &green,
	})
	for _, c := range l.cols {
		l.text(GroupTableHeader, c.x+2, y+5, c.w-4, c.title, 8, "B", "C", colorWhite)
	}
}

func (l *layouter) drawRow(i int, line gst.Line) {
	group := RowGroup(line.Serial)
	if i%2 == 0 {
		stripe := colorStripe
		l.add(DrawOp{
			Kind: OpRect, Group: group,
			X: l.geo.Margin, Y: l.y, W: l.geo.ContentWidth(), H: l.geo.RowHeight,
			Fill: &stripe,
		})
	}
	item := line.Item
	hsn := item.HSNCode
	if hsn == "" {
		hsn = "-"
	}
	cells := []string{
		strconv.Itoa(line.Serial),
		item.Name,
		hsn,
		item.Quantity.String(),
		item.Unit,
		rupee.Format(item.Rate),
		item.GSTPercent.String() + "%",
		rupee.Format(line.CGST),
		rupee.Format(line.SGST),
		rupee.Format(line.LineTotal),
	}
	for j, c := range l.cols {
		if c.numeric {
			l.value(group, c.x+2, l.y+5, c.w-4, cells[j], 8, "", c.align, colorText)
			continue
		}
		l.text(group, c.x+2, l.y+5, c.w-4, cells[j], 8, "", c.align, colorText)
	}
}

func (l *layouter) drawTotalsBlock() {
	d := l.doc
	c := d.Company
	g := GroupTotals
	x := l.geo.Margin
	w := l.geo.ContentWidth()
	right := l.geo.Width - l.geo.Margin

	y := l.y + totalsGap
	labelX := x + 310
	valueW := right - labelX

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Sub Total:", d.Totals.Subtotal},
		{"CGST Total:", d.Totals.CGSTTotal},
		{"SGST Total:", d.Totals.SGSTTotal},
	}
	for _, r := range rows {
		l.text(g, labelX, y, 0, r.label, 10, "", "L", colorText)
		l.value(g, labelX, y, valueW, rupee.Format(r.value), 10, "", "R", colorText)
		y += totalsLineHeight
	}
	stripe := colorStripe
	l.add(DrawOp{Kind: OpRect, Group: g, X: labelX - 5, Y: y - 3, W: valueW + 5, H: totalsLineHeight, Fill: &stripe})
	l.text(g, labelX, y, 0, "Grand Total:", 11, "B", "L", colorGreen)
	l.value(g, labelX, y, valueW, rupee.Format(d.Totals.GrandTotal), 11, "B", "R", colorGreen)
	y += totalsLineHeight

	l.text(g, x, y+5, w, "Amount in Words: "+d.AmountInWords, 9, "B", "L", colorText)
	y += wordsHeight

	l.text(g, x, y, 0, "Bank Details:", 10, "B", "L", colorGreen)
	l.text(g, x, y+16, w, "Account Name: "+c.Bank.AccountName, 9, "", "L", colorText)
	l.text(g, x, y+28, w, "Account Number: "+c.Bank.AccountNumber, 9, "", "L", colorText)
	l.text(g, x, y+40, w, "IFSC: "+c.Bank.IFSC, 9, "", "L", colorText)
	y += bankHeight

	l.text(g, x, y, 0, "Terms & Conditions:", 10, "B", "L", colorGreen)
	y += termsTitle
	for _, t := range c.Terms {
		l.text(g, x, y, w, "• "+t, 8, "", "L", colorText)
		y += termLineHeight
	}
	y += termsTail

	sigX := right - 135
	green := colorGreen
	l.add(DrawOp{Kind: OpLine, Group: g, X: sigX, Y: y + 30, W: 120, Stroke: &green, LineWidth: 0.5})
	l.text(g, sigX, y+35, 120, c.Signatory, 9, "", "C", colorText)
	l.text(g, sigX, y+48, 120, c.Name, 9, "B", "C", colorText)
	y += signatureHeight

	l.y = y
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}
