package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillTo datos del cliente que aparecen en el bloque "Bill To" de la factura.
type BillTo struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string // opcional
}

// Invoice representa una factura GST guardada.
// Los totales y el importe en palabras se recalculan desde Items en cada
// guardado; nunca se aceptan del cliente.
type Invoice struct {
	ID            string
	Number        string // AZES{YYYY}{MM}{NN}, único
	Date          time.Time
	Customer      BillTo
	Items         []LineItem
	Subtotal      decimal.Decimal
	CGSTTotal     decimal.Decimal
	SGSTTotal     decimal.Decimal
	GrandTotal    decimal.Decimal
	AmountInWords string
	PDFURL        string // URL pública tras publicar el PDF (vacío si no se publicó)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
