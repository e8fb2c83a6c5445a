package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue facturación agregada de un mes (YYYY-MM).
type MonthlyRevenue struct {
	Month        string
	InvoiceCount int
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	GrandTotal   decimal.Decimal
}

// MonthlyBookings reservas recibidas en un mes (YYYY-MM).
type MonthlyBookings struct {
	Month string
	Count int
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Los meses sin datos no aparecen; el use case completa los huecos.
type AnalyticsRepository interface {
	// GetMonthlyRevenue agrupa por mes la fecha de factura en [from, to).
	GetMonthlyRevenue(ctx context.Context, from, to time.Time) ([]MonthlyRevenue, error)
	// GetMonthlyBookings agrupa por mes la fecha de creación en [from, to).
	GetMonthlyBookings(ctx context.Context, from, to time.Time) ([]MonthlyBookings, error)
}
