// Package analytics contiene los casos de uso del dashboard del panel.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

const (
	dashboardRecent = 5 // reservas en el widget "recientes"
	dashboardMonths = 6 // meses de la serie (el actual incluido)
)

// ist zona de los meses de la serie.
var ist = time.FixedZone("IST", 5*3600+1800)

// DashboardUseCase resumen de reservas y facturación para el panel.
//
// Fuentes: BookingRepository (conteos y recientes), InvoiceRepository (total)
// y AnalyticsRepository (series mensuales read-only).
type DashboardUseCase struct {
	bookings  repository.BookingRepository
	invoices  repository.InvoiceRepository
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	bookings repository.BookingRepository,
	invoices repository.InvoiceRepository,
	analytics repository.AnalyticsRepository,
) *DashboardUseCase {
	return &DashboardUseCase{bookings: bookings, invoices: invoices, analytics: analytics, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats construye el DashboardStatsDTO.
//
// Cinco consultas en paralelo:
//  1. Stats()              → conteos por estado
//  2. List(limit 5)        → reservas recientes
//  3. Count()              → facturas emitidas
//  4. GetMonthlyRevenue    → facturación de los últimos 6 meses
//  5. GetMonthlyBookings   → reservas de los últimos 6 meses
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	// ── Ventana de meses ─────────────────────────────────────────────────────
	now := uc.now().In(ist)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := current.AddDate(0, -(dashboardMonths - 1), 0)
	to := current.AddDate(0, 1, 0)

	// ── Goroutines para paralelizar las consultas ───────────────────────────
	type statsResult struct {
		stats entity.BookingStats
		err   error
	}
	type recentResult struct {
		list []*entity.Booking
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type revenueResult struct {
		rows []repository.MonthlyRevenue
		err  error
	}
	type bookingsResult struct {
		rows []repository.MonthlyBookings
		err  error
	}

	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)
	countCh := make(chan countResult, 1)
	revenueCh := make(chan revenueResult, 1)
	monthlyCh := make(chan bookingsResult, 1)

	go func() {
		s, err := uc.bookings.Stats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		l, err := uc.bookings.List(ctx, entity.BookingFilter{Limit: dashboardRecent})
		recentCh <- recentResult{l, err}
	}()
	go func() {
		n, err := uc.invoices.Count(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analytics.GetMonthlyRevenue(ctx, from, to)
		revenueCh <- revenueResult{rows, err}
	}()
	go func() {
		rows, err := uc.analytics.GetMonthlyBookings(ctx, from, to)
		monthlyCh <- bookingsResult{rows, err}
	}()

	stats := <-statsCh
	recent := <-recentCh
	count := <-countCh
	revenue := <-revenueCh
	monthly := <-monthlyCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de reservas: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: reservas recientes: %w", recent.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de facturas: %w", count.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: facturación mensual: %w", revenue.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("dashboard: reservas mensuales: %w", monthly.err)
	}

	// ── Serie mensual con huecos en cero ────────────────────────────────────
	points := make([]dto.MonthlyPointDTO, 0, dashboardMonths)
	index := make(map[string]int, dashboardMonths)
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		index[key] = len(points)
		points = append(points, dto.MonthlyPointDTO{
			Month:      key,
			Revenue:    decimal.Zero,
			TaxBilled:  decimal.Zero,
			NetRevenue: decimal.Zero,
		})
	}
	total := decimal.Zero
	for _, r := range revenue.rows {
		i, ok := index[r.Month]
		if !ok {
			continue
		}
		points[i].Invoices = r.InvoiceCount
		points[i].Revenue = r.GrandTotal.Round(2)
		points[i].TaxBilled = r.TaxTotal.Round(2)
		points[i].NetRevenue = r.Subtotal.Round(2)
		total = total.Add(r.GrandTotal)
	}
	for _, b := range monthly.rows {
		if i, ok := index[b.Month]; ok {
			points[i].Bookings = b.Count
		}
	}

	// ── Construir DTO ───────────────────────────────────────────────────────
	return &dto.DashboardStatsDTO{
		TotalBookings:     stats.stats.Total,
		PendingBookings:   stats.stats.Pending,
		ConfirmedBookings: stats.stats.Confirmed,
		CompletedBookings: stats.stats.Completed,
		CancelledBookings: stats.stats.Cancelled,
		TotalInvoices:     count.n,
		Revenue:           total.Round(2),
		RecentBookings:    dto.NewBookingResponses(recent.list),
		Monthly:           points,
	}, nil
}
