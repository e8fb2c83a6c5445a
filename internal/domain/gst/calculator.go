// Package gst calcula importes de factura con GST indio (CGST + SGST).
//
// Por cada línea incluida (cantidad > 0):
//
//	Amount    = Quantity * Rate
//	GSTAmount = Amount * GSTPercent / 100
//	CGST      = SGST = GSTAmount / 2
//	LineTotal = Amount + GSTAmount
//
// Todo se calcula con decimal exacto; no se redondea ninguna línea ni total,
// el redondeo a dos decimales es cosa de la presentación.
package gst

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

var half = decimal.New(5, -1)

// Line es una línea incluida con sus importes derivados.
type Line struct {
	Item      entity.LineItem // normalizada
	Serial    int             // 1..n sobre las líneas incluidas
	Amount    decimal.Decimal
	GSTAmount decimal.Decimal
	CGST      decimal.Decimal
	SGST      decimal.Decimal
	LineTotal decimal.Decimal
}

// Totals agregados de la factura.
type Totals struct {
	Subtotal   decimal.Decimal
	CGSTTotal  decimal.Decimal
	SGSTTotal  decimal.Decimal
	GrandTotal decimal.Decimal
}

// TaxTotal suma de CGST y SGST.
func (t Totals) TaxTotal() decimal.Decimal {
	return t.CGSTTotal.Add(t.SGSTTotal)
}

// Result líneas anotadas (en el orden de entrada) y totales.
type Result struct {
	Lines  []Line
	Totals Totals
}

// ComputeLine calcula los importes de una sola línea (ya normalizada).
func ComputeLine(item entity.LineItem) Line {
	amount := item.Quantity.Mul(item.Rate)
	gstAmount := amount.Mul(item.GSTPercent).Shift(-2)
	split := gstAmount.Mul(half)
	return Line{
		Item:      item,
		Amount:    amount,
		GSTAmount: gstAmount,
		CGST:      split,
		SGST:      split,
		LineTotal: amount.Add(gstAmount),
	}
}

// Compute descarta las líneas con cantidad <= 0 y calcula el resto.
// Nunca falla: una lista vacía devuelve totales en cero.
func Compute(items []entity.LineItem) Result {
	res := Result{
		Lines: make([]Line, 0, len(items)),
		Totals: Totals{
			Subtotal:   decimal.Zero,
			CGSTTotal:  decimal.Zero,
			SGSTTotal:  decimal.Zero,
			GrandTotal: decimal.Zero,
		},
	}
	for _, raw := range items {
		item := raw.Normalized()
		if !item.Included() {
			continue
		}
		line := ComputeLine(item)
		line.Serial = len(res.Lines) + 1
		res.Lines = append(res.Lines, line)

		res.Totals.Subtotal = res.Totals.Subtotal.Add(line.Amount)
		res.Totals.CGSTTotal = res.Totals.CGSTTotal.Add(line.CGST)
		res.Totals.SGSTTotal = res.Totals.SGSTTotal.Add(line.SGST)
	}
	res.Totals.GrandTotal = res.Totals.Subtotal.Add(res.Totals.CGSTTotal).Add(res.Totals.SGSTTotal)
	return res
}
