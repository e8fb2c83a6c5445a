package entity

// BankDetails datos bancarios impresos al pie de la factura.
type BankDetails struct {
	AccountName   string
	AccountNumber string
	IFSC          string
}

// CompanyProfile identidad del emisor que aparece en facturas y comprobantes.
// Se carga desde configuración (no hay tabla de empresas: un solo emisor).
type CompanyProfile struct {
	Name      string
	Tagline   string
	GSTIN     string
	Address   string
	Contact   string
	Bank      BankDetails
	Terms     []string
	Signatory string // texto bajo la firma
}

// DefaultTerms condiciones impresas en cada factura.
var DefaultTerms = []string{
	"Cable price up to 40 meters only",
	"Extra material beyond scope chargeable",
	"Installation after advance payment",
	"Price validity: 15 days",
	"Warranty as per manufacturer",
	"No hidden charges",
}

// DefaultCompanyProfile perfil de A Z ENTERPRISES usado cuando la
// configuración no define otro.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:    "A Z ENTERPRISES",
		Tagline: "Authorized Solar Distributors / Installation",
		GSTIN:   "01ACMFA6519J1ZF",
		Address: "BY-PASS ROAD HANDWARA - 193221",
		Contact: "7006031785, 6006780785",
		Bank: BankDetails{
			AccountName:   "A Z ENTERPRISES",
			AccountNumber: "0012010100003649",
			IFSC:          "JAKA0FOREST",
		},
		Terms:     append([]string(nil), DefaultTerms...),
		Signatory: "Authorized Signatory",
	}
}
