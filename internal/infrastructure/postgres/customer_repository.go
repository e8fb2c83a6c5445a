package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo vista de clientes agrupando bookings por lower(email).
// Nombre, teléfono, dirección y estado salen de la reserva más reciente.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT lower(email),
	       (array_agg(name    ORDER BY created_at DESC))[1],
	       (array_agg(phone   ORDER BY created_at DESC))[1],
	       (array_agg(address ORDER BY created_at DESC))[1],
	       COUNT(*),
	       (array_agg(status  ORDER BY created_at DESC))[1],
	       MIN(created_at),
	       MAX(created_at)
	FROM bookings`

func scanCustomer(row pgx.Row) (*entity.CustomerSummary, error) {
	var c entity.CustomerSummary
	if err := row.Scan(&c.Email, &c.Name, &c.Phone, &c.Address, &c.BookingCount, &c.LatestStatus, &c.FirstBooking, &c.LatestBooking); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListSummaries filtra por nombre, email o teléfono.
func (r *CustomerRepo) ListSummaries(ctx context.Context, search string, limit, offset int) ([]*entity.CustomerSummary, error) {
	args := []any{limit, offset}
	where := ""
	if s := strings.TrimSpace(search); s != "" {
		args = append(args, likePattern(s))
		where = ` WHERE name ILIKE $3 OR email ILIKE $3 OR phone ILIKE $3`
	}
	query := customerSelect + where + ` GROUP BY lower(email) ORDER BY MAX(created_at) DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := []*entity.CustomerSummary{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByEmail resumen de un cliente; (nil, nil) si no tiene reservas.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.CustomerSummary, error) {
	query := customerSelect + ` WHERE lower(email) = lower($1) GROUP BY lower(email)`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// BookingsByEmail historial del cliente, la reserva más reciente primero.
func (r *CustomerRepo) BookingsByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE lower(email) = lower($1) ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("customer bookings: %w", err)
	}
	return scanBookings(rows)
}
