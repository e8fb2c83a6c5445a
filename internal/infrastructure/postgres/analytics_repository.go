package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetMonthlyRevenue agrupa por mes de invoice_date (DATE, ya en calendario indio).
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context, from, to time.Time) ([]repository.MonthlyRevenue, error) {
	const query = `
	SELECT to_char(invoice_date, 'YYYY-MM')       AS month,
	       COUNT(*)                               AS invoice_count,
	       COALESCE(SUM(subtotal), 0)             AS subtotal,
	       COALESCE(SUM(cgst_total + sgst_total), 0) AS tax_total,
	       COALESCE(SUM(grand_total), 0)          AS grand_total
	FROM invoices
	WHERE invoice_date >= $1::date AND invoice_date < $2::date
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenue
	for rows.Next() {
		var row repository.MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.InvoiceCount, &row.Subtotal, &row.TaxTotal, &row.GrandTotal); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyBookings agrupa por mes de created_at en hora de India.
func (r *AnalyticsRepo) GetMonthlyBookings(ctx context.Context, from, to time.Time) ([]repository.MonthlyBookings, error) {
	const query = `
	SELECT to_char(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM') AS month,
	       COUNT(*)
	FROM bookings
	WHERE created_at >= ($1::timestamp AT TIME ZONE 'Asia/Kolkata')
	  AND created_at <  ($2::timestamp AT TIME ZONE 'Asia/Kolkata')
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyBookings: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyBookings
	for rows.Next() {
		var row repository.MonthlyBookings
		if err := rows.Scan(&row.Month, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyBookings scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
