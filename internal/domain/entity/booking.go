package entity

import "time"

// Estados de una reserva (enum simple, sin máquina de estados).
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// Tipos de documento que el cliente adjunta al reservar.
const (
	DocAadhar          = "aadhar"
	DocElectricityBill = "electricityBill"
	DocBankPassbook    = "bankPassbook"
)

// BookingDocTypes en el orden en que se piden en el formulario.
var BookingDocTypes = []string{DocAadhar, DocElectricityBill, DocBankPassbook}

// ValidBookingStatus indica si s es uno de los estados admitidos.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// ValidDocType indica si t es un tipo de documento admitido.
func ValidDocType(t string) bool {
	for _, d := range BookingDocTypes {
		if d == t {
			return true
		}
	}
	return false
}

// Booking representa una solicitud de instalación enviada desde el sitio público.
type Booking struct {
	ID                 string
	Reference          string // código corto legible (ej. BK-7F3A2C) para el comprobante
	Name               string
	Phone              string
	Email              string
	Address            string
	Requirement        string
	PreferredDate      string // tal como lo envía el formulario (YYYY-MM-DD)
	AadharURL          string
	ElectricityBillURL string
	BankPassbookURL    string
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DocumentURL devuelve la URL del documento docType, o "" si no existe.
func (b *Booking) DocumentURL(docType string) string {
	switch docType {
	case DocAadhar:
		return b.AadharURL
	case DocElectricityBill:
		return b.ElectricityBillURL
	case DocBankPassbook:
		return b.BankPassbookURL
	}
	return ""
}

// SetDocumentURL asigna la URL del documento docType.
func (b *Booking) SetDocumentURL(docType, url string) {
	switch docType {
	case DocAadhar:
		b.AadharURL = url
	case DocElectricityBill:
		b.ElectricityBillURL = url
	case DocBankPassbook:
		b.BankPassbookURL = url
	}
}

// BookingFilter filtros del listado de reservas (admin).
type BookingFilter struct {
	Search string // nombre, email o teléfono (ILIKE)
	Status string
	Limit  int
	Offset int
}

// BookingStats conteos para el dashboard.
type BookingStats struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Cancelled int
}
