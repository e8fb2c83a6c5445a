package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación de BookingRepository.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `
	id, reference, name, phone, email, address, requirement, preferred_date,
	aadhar_file, electricity_bill_file, bank_passbook_file, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.Name, &b.Phone, &b.Email, &b.Address, &b.Requirement, &b.PreferredDate,
		&b.AadharURL, &b.ElectricityBillURL, &b.BankPassbookURL, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()
	list := []*entity.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Create persiste la reserva.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO bookings (id, reference, name, phone, email, address, requirement, preferred_date,
		                      aadhar_file, electricity_bill_file, bank_passbook_file, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Reference, b.Name, b.Phone, b.Email, b.Address, b.Requirement, b.PreferredDate,
		b.AadharURL, b.ElectricityBillURL, b.BankPassbookURL, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("booking %s: %w", b.Reference, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva; (nil, nil) si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	b, err := scanBooking(r.q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// bookingWhere arma el WHERE del listado; devuelve la cláusula y sus args.
func bookingWhere(f entity.BookingFilter) (string, []any) {
	var conds []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List ordena por fecha de creación descendente.
func (r *BookingRepo) List(ctx context.Context, f entity.BookingFilter) ([]*entity.Booking, error) {
	where, args := bookingWhere(f)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return scanBookings(rows)
}

// UpdateStatus cambia el estado de la reserva.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la reserva.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats conteos por estado.
func (r *BookingRepo) Stats(ctx context.Context) (entity.BookingStats, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Pending'),
		       COUNT(*) FILTER (WHERE status = 'Confirmed'),
		       COUNT(*) FILTER (WHERE status = 'Completed'),
		       COUNT(*) FILTER (WHERE status = 'Cancelled')
		FROM bookings`
	var s entity.BookingStats
	if err := r.q.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Confirmed, &s.Completed, &s.Cancelled); err != nil {
		return s, fmt.Errorf("booking stats: %w", err)
	}
	return s, nil
}
