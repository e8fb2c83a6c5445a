package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultUnit se usa cuando una línea llega sin unidad.
const DefaultUnit = "Nos"

// LineItem representa una línea facturable de la factura (material o servicio).
type LineItem struct {
	Name       string
	HSNCode    string // solo se muestra, no participa en cálculos
	Quantity   decimal.Decimal
	Unit       string // "Nos", "Mtr", "Set"...
	Rate       decimal.Decimal
	GSTPercent decimal.Decimal
}

// Normalized devuelve una copia lista para calcular: unidad por defecto,
// nombre sin espacios sobrantes y tarifa/GST negativos llevados a cero.
// La cantidad no se toca; el calculador descarta las líneas con cantidad <= 0.
func (li LineItem) Normalized() LineItem {
	li.Name = strings.TrimSpace(li.Name)
	li.HSNCode = strings.TrimSpace(li.HSNCode)
	li.Unit = strings.TrimSpace(li.Unit)
	if li.Unit == "" {
		li.Unit = DefaultUnit
	}
	if li.Rate.IsNegative() {
		li.Rate = decimal.Zero
	}
	if li.GSTPercent.IsNegative() {
		li.GSTPercent = decimal.Zero
	}
	return li
}

// Included indica si la línea entra en el cálculo y en el PDF.
func (li LineItem) Included() bool {
	return li.Quantity.IsPositive()
}
