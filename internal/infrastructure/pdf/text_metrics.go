package pdf

import (
	"math"
	"strings"
)

const ellipsis = "..."

// coreRupee reemplaza a "₹" con fuentes core, que no tienen el glifo.
const coreRupee = "Rs."

// coreSymbols devuelve s tal como se dibuja con fuentes core.
func coreSymbols(s string) string { return strings.ReplaceAll(s, "₹", coreRupee) }

// glyphWidth ancho aproximado de r en Helvetica, en fracciones de em.
// Alcanza para decidir recortes; el ancho exacto depende de la fuente final.
func glyphWidth(r rune) float64 {
	switch {
	case r == ' ':
		return 0.278
	case strings.ContainsRune("ijl.,:;!|'", r):
		return 0.25
	case strings.ContainsRune("ftrI()-", r):
		return 0.34
	case strings.ContainsRune("mwMW", r):
		return 0.85
	case r >= '0' && r <= '9':
		return 0.556
	case r >= 'A' && r <= 'Z':
		return 0.68
	case r >= 'a' && r <= 'z':
		return 0.52
	default:
		return 0.6
	}
}

// metrics mide el texto como lo dibuja el writer: con fuentes core cada
// "₹" ocupa lo que "Rs.".
type metrics struct{ core bool }

func (m metrics) runeWidth(r rune, size float64, style string) float64 {
	var em float64
	if m.core && r == '₹' {
		for _, c := range coreRupee {
			em += glyphWidth(c)
		}
	} else {
		em = glyphWidth(r)
	}
	if style == "B" {
		em *= 1.06
	}
	return em * size
}

func (m metrics) width(s string, size float64, style string) float64 {
	var w float64
	for _, r := range s {
		w += m.runeWidth(r, size, style)
	}
	return w
}

// fit recorta s con "..." para que quepa en maxW.
func (m metrics) fit(s string, maxW, size float64, style string) string {
	if m.width(s, size, style) <= maxW {
		return s
	}
	budget := maxW - m.width(ellipsis, size, style)
	var b strings.Builder
	var used float64
	for _, r := range s {
		w := m.runeWidth(r, size, style)
		if used+w > budget {
			break
		}
		used += w
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ") + ellipsis
}

// fitSize devuelve el tamaño de fuente, como mucho size, con el que s entra
// entero en maxW. Importes y códigos nunca se recortan.
func (m metrics) fitSize(s string, maxW, size float64, style string) float64 {
	w := m.width(s, size, style)
	if w <= maxW || w == 0 || maxW <= 0 {
		return size
	}
	return math.Floor(size*maxW/w*10) / 10
}

// wrap parte s en líneas de ancho maxW cortando entre palabras. Una palabra
// más ancha que maxW se parte por caracteres.
func (m metrics) wrap(s string, maxW, size float64, style string) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		for m.width(word, size, style) > maxW {
			head := m.prefix(word, maxW, size, style)
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		cand := word
		if cur != "" {
			cand = cur + " " + word
		}
		if m.width(cand, size, style) <= maxW {
			cur = cand
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// prefix el prefijo más largo de word que entra en maxW (al menos una runa).
func (m metrics) prefix(word string, maxW, size float64, style string) string {
	var used float64
	for i, r := range word {
		w := m.runeWidth(r, size, style)
		if i > 0 && used+w > maxW {
			return word[:i]
		}
		used += w
	}
	return word
}

// TextWidth ancho aproximado de s en puntos con una fuente UTF-8.
func TextWidth(s string, size float64, style string) float64 {
	return metrics{}.width(s, size, style)
}

// DrawnWidth ancho de s tal como lo dibuja el writer con esta geometría.
func (g Geometry) DrawnWidth(s string, size float64, style string) float64 {
	return metrics{core: g.CoreFonts}.width(s, size, style)
}
