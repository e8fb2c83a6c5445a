// Package numeric normaliza valores numéricos que llegan de formularios o de
// registros JSON heredados antes de que entren en cualquier cálculo.
//
// Regla general: un valor que no se puede interpretar vale cero. Nunca se
// propaga NaN ni un error de parseo hacia un total.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FromFloat convierte un float64 a decimal; NaN e ±Inf valen cero.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseLeading interpreta el prefijo numérico de s, como hacía el formulario
// original con parseFloat: "2 pcs" → 2, "18%" → 18, "₹1,500.50" → 1500.50.
// Si no hay prefijo numérico devuelve (0, false).
func ParseLeading(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimSpace(s)

	var b strings.Builder
	seenDigit, seenDot := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
		case r == '.' && !seenDot:
			b.WriteRune(r)
			seenDot = true
		case r == ',' && seenDigit:
			// separador de miles (formato indio o internacional)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == '+' && i == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(b.String(), "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Lenient es un decimal que se decodifica de JSON sin fallar nunca:
// acepta números, strings numéricos y strings con sufijo ("1 pcs");
// null, booleanos, objetos o texto sin número valen cero.
type Lenient struct {
	decimal.Decimal
}

// NewLenient envuelve un decimal.
func NewLenient(d decimal.Decimal) Lenient { return Lenient{Decimal: d} }

// UnmarshalJSON implementa json.Unmarshaler.
func (l *Lenient) UnmarshalJSON(data []byte) error {
	l.Decimal = decimal.Zero
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if d, ok := ParseLeading(s); ok {
			l.Decimal = d
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if d, err := decimal.NewFromString(string(data)); err == nil {
			l.Decimal = d
		}
	}
	return nil
}

// MarshalJSON serializa como número JSON (no como string).
func (l Lenient) MarshalJSON() ([]byte, error) {
	return []byte(l.Decimal.String()), nil
}
