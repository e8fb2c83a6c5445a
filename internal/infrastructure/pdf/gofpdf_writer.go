package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	coreFamily = "helvetica"
	ttfFamily  = "invoice"
)

// GofpdfWriter serializa páginas de primitivas a PDF con gofpdf.
//
// Sin fuente TTF configurada usa Helvetica (fuente core): el texto se
// codifica a Windows-1252 y "₹" se reemplaza por "Rs.", que la fuente core
// no tiene. Con PDF_FONT_PATH el texto se escribe en UTF-8 tal cual.
type GofpdfWriter struct {
	regular []byte
	bold    []byte
	creator string
}

// NewGofpdfWriter construye el writer. fontPath y boldPath son opcionales;
// si solo se da fontPath se usa también para negrita.
func NewGofpdfWriter(fontPath, boldPath, creator string) (*GofpdfWriter, error) {
	w := &GofpdfWriter{creator: creator}
	if fontPath == "" {
		return w, nil
	}
	regular, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("pdf: leer fuente %s: %w", fontPath, err)
	}
	w.regular, w.bold = regular, regular
	if boldPath != "" {
		bold, err := os.ReadFile(boldPath)
		if err != nil {
			return nil, fmt.Errorf("pdf: leer fuente %s: %w", boldPath, err)
		}
		w.bold = bold
	}
	return w, nil
}

// UsesUTF8 indica si hay una fuente TTF cargada.
func (w *GofpdfWriter) UsesUTF8() bool { return len(w.regular) > 0 }

// Write dibuja las páginas y devuelve los bytes del PDF.
func (w *GofpdfWriter) Write(pages []Page, geo Geometry, title string) ([]byte, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)
	if w.creator != "" {
		doc.SetCreator(w.creator, true)
	}

	family := coreFamily
	encode := coreText
	if w.UsesUTF8() {
		doc.AddUTF8FontFromBytes(ttfFamily, "", w.regular)
		doc.AddUTF8FontFromBytes(ttfFamily, "B", w.bold)
		family = ttfFamily
		encode = func(s string) string { return s }
	}

	for _, p := range pages {
		doc.AddPage()
		for _, op := range p.Ops {
			drawOp(doc, op, family, encode)
		}
		if doc.Err() {
			return nil, fmt.Errorf("pdf: página %d: %w", p.Number, doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func drawOp(doc *gofpdf.Fpdf, op DrawOp, family string, encode func(string) string) {
	switch op.Kind {
	case OpText:
		doc.SetFont(family, op.Style, op.Size)
		doc.SetTextColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		doc.SetXY(op.X, op.Y)
		align := op.Align
		if align == "" {
			align = "L"
		}
		doc.CellFormat(op.W, op.H, encode(op.Text), "", 0, align+"T", false, 0, "")
	case OpRect:
		style := ""
		if op.Fill != nil {
			doc.SetFillColor(int(op.Fill.R), int(op.Fill.G), int(op.Fill.B))
			style += "F"
		}
		if op.Stroke != nil {
			doc.SetDrawColor(int(op.Stroke.R), int(op.Stroke.G), int(op.Stroke.B))
			doc.SetLineWidth(op.LineWidth)
			style += "D"
		}
		if style == "" {
			return
		}
		doc.Rect(op.X, op.Y, op.W, op.H, style)
	case OpLine:
		if op.Stroke != nil {
			doc.SetDrawColor(int(op.Stroke.R), int(op.Stroke.G), int(op.Stroke.B))
		}
		doc.SetLineWidth(op.LineWidth)
		doc.Line(op.X, op.Y, op.X+op.W, op.Y+op.H)
	}
}

// coreText adapta s a las fuentes core de PDF (Windows-1252). Los
// encoders de x/text guardan estado, por eso se crea uno por llamada.
func coreText(s string) string {
	s = coreSymbols(s)
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		return s
	}
	return out
}
