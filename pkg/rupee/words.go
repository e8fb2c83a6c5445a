// Package rupee convierte importes en rupias a su representación textual
// usando el sistema de numeración indio (thousand, lakh, crore).
package rupee

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	suffix = "Rupees Only"

	lakh     = 100_000
	thousand = 1_000
)

var bigCrore = big.NewInt(10_000_000)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Words devuelve el importe en palabras, redondeado a la rupia entera.
// Ej: 113504 → "One Lakh Thirteen Thousand Five Hundred Four Rupees Only".
// Los paise se descartan (se redondea antes de convertir).
func Words(amount decimal.Decimal) string {
	n := amount.Round(0)
	if n.IsZero() {
		return "Zero " + suffix
	}

	parts := spell(n.Abs().BigInt())
	if n.IsNegative() {
		parts = append([]string{"Minus"}, parts...)
	}
	parts = append(parts, suffix)
	return strings.Join(parts, " ")
}

// WordsFromFloat es Words para float64. NaN e ±Inf devuelven "".
func WordsFromFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return Words(decimal.NewFromFloat(f))
}

// WordsFromString es Words para texto libre; si no es numérico devuelve "".
func WordsFromString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ""
	}
	return Words(d)
}

// spell descompone n (>0) en crores, lakhs, thousands y el resto 0–999.
// Un número de crores mayor que 999 se deletrea a su vez en sistema indio.
func spell(n *big.Int) []string {
	if n.Cmp(bigCrore) < 0 {
		return belowCrore(n.Int64())
	}
	crores, rest := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
	parts := append(spell(crores), "Crore")
	return append(parts, belowCrore(rest.Int64())...)
}

func belowCrore(n int64) []string {
	var parts []string
	if l := n / lakh; l > 0 {
		parts = append(parts, twoDigitWords(l), "Lakh")
	}
	n %= lakh
	if t := n / thousand; t > 0 {
		parts = append(parts, twoDigitWords(t), "Thousand")
	}
	n %= thousand
	if n > 0 {
		parts = append(parts, threeDigitWords(n))
	}
	return parts
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

func threeDigitWords(n int64) string {
	if n < 100 {
		return twoDigitWords(n)
	}
	w := ones[n/100] + " Hundred"
	if rem := n % 100; rem != 0 {
		w += " " + twoDigitWords(rem)
	}
	return w
}
