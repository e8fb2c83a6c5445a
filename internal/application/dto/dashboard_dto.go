package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalBookings     int               `json:"total_bookings"`
	PendingBookings   int               `json:"pending_bookings"`
	ConfirmedBookings int               `json:"confirmed_bookings"`
	CompletedBookings int               `json:"completed_bookings"`
	CancelledBookings int               `json:"cancelled_bookings"`
	TotalInvoices     int               `json:"total_invoices"`
	Revenue           decimal.Decimal   `json:"revenue"` // grand total facturado en la ventana de Monthly
	RecentBookings    []BookingResponse `json:"recent_bookings"`
	Monthly           []MonthlyPointDTO `json:"monthly"`
}

// MonthlyPointDTO punto de la serie mensual (los meses sin datos van en cero).
type MonthlyPointDTO struct {
	Month      string          `json:"month"` // YYYY-MM
	Bookings   int             `json:"bookings"`
	Invoices   int             `json:"invoices"`
	Revenue    decimal.Decimal `json:"revenue"`
	TaxBilled  decimal.Decimal `json:"tax_billed"`
	NetRevenue decimal.Decimal `json:"net_revenue"`
}
