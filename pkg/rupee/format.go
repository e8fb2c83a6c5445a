package rupee

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol es el signo de la rupia india (U+20B9).
const Symbol = "₹"

// Format devuelve "₹" + importe con dos decimales y agrupación india.
// Ej: 1234567.5 → "₹12,34,567.50".
func Format(d decimal.Decimal) string {
	return Symbol + Group(d)
}

// Group formatea con dos decimales y separadores de lakh/crore, sin símbolo.
// Los últimos tres dígitos forman un grupo; el resto se agrupa de a dos.
func Group(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	groups := []string{}
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		intPart = intPart[len(intPart)-3:]
	}
	groups = append(groups, intPart)

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + strings.Join(groups, ",") + "." + frac
}
