package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/application/analytics"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeBookings struct {
	repository.BookingRepository
	stats  entity.BookingStats
	recent []*entity.Booking
	limit  int
}

func (f *fakeBookings) Stats(context.Context) (entity.BookingStats, error) { return f.stats, nil }

func (f *fakeBookings) List(_ context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	f.limit = filter.Limit
	return f.recent, nil
}

type fakeInvoices struct {
	repository.InvoiceRepository
	count int
	err   error
}

func (f *fakeInvoices) Count(context.Context) (int, error) { return f.count, f.err }

type fakeAnalytics struct {
	revenue  []repository.MonthlyRevenue
	bookings []repository.MonthlyBookings
	from, to time.Time
}

func (f *fakeAnalytics) GetMonthlyRevenue(_ context.Context, from, to time.Time) ([]repository.MonthlyRevenue, error) {
	f.from, f.to = from, to
	return f.revenue, nil
}

func (f *fakeAnalytics) GetMonthlyBookings(_ context.Context, _, _ time.Time) ([]repository.MonthlyBookings, error) {
	return f.bookings, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestGetStats_SerieConHuecosEnCero(t *testing.T) {
	bookings := &fakeBookings{
		stats:  entity.BookingStats{Total: 7, Pending: 3, Confirmed: 2, Completed: 1, Cancelled: 1},
		recent: []*entity.Booking{{ID: "b1", Name: "Asha"}},
	}
	an := &fakeAnalytics{
		revenue: []repository.MonthlyRevenue{
			{Month: "2026-06", InvoiceCount: 2, Subtotal: d("1000"), TaxTotal: d("180"), GrandTotal: d("1180")},
			{Month: "2026-10", InvoiceCount: 1, Subtotal: d("500.5"), TaxTotal: d("90.09"), GrandTotal: d("590.59")},
			{Month: "2025-01", InvoiceCount: 9, GrandTotal: d("99999")}, // fuera de la ventana
		},
		bookings: []repository.MonthlyBookings{{Month: "2026-08", Count: 4}},
	}
	// 31/10/2026 20:00 UTC ya es noviembre en India.
	now := time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)
	uc := analytics.NewDashboardUseCase(bookings, &fakeInvoices{count: 3}, an).
		WithClock(func() time.Time { return now })

	res, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, res.TotalBookings)
	assert.Equal(t, 3, res.PendingBookings)
	assert.Equal(t, 3, res.TotalInvoices)
	assert.Equal(t, 5, bookings.limit)
	require.Len(t, res.RecentBookings, 1)

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), an.from)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), an.to)

	months := make([]string, 0, len(res.Monthly))
	for _, p := range res.Monthly {
		months = append(months, p.Month)
	}
	assert.Equal(t, []string{"2026-06", "2026-07", "2026-08", "2026-09", "2026-10", "2026-11"}, months)

	assert.Equal(t, 2, res.Monthly[0].Invoices)
	assert.True(t, res.Monthly[0].Revenue.Equal(d("1180")))
	assert.True(t, res.Monthly[1].Revenue.IsZero())
	assert.Equal(t, 4, res.Monthly[2].Bookings)
	assert.True(t, res.Monthly[4].NetRevenue.Equal(d("500.5")))
	assert.True(t, res.Revenue.Equal(d("1770.59")))
}

func TestGetStats_PropagaErrores(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeBookings{}, &fakeInvoices{err: errors.New("db caída")}, &fakeAnalytics{})

	_, err := uc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conteo de facturas")
}
