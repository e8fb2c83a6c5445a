package billing

import (
	"fmt"
	"time"
)

// InvoicePrefix prefijo de los números de factura.
const InvoicePrefix = "AZES"

// IST zona horaria del negocio; el período del correlativo se calcula en ella.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Period devuelve YYYYMM de t en IST.
func Period(t time.Time) string {
	return t.In(IST).Format("200601")
}

// FormatInvoiceNumber arma AZES{YYYY}{MM}{NN}; NN tiene al menos dos dígitos.
func FormatInvoiceNumber(period string, seq int) string {
	return fmt.Sprintf("%s%s%02d", InvoicePrefix, period, seq)
}
