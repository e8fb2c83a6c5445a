package repository

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// BookingRepository define el puerto de persistencia para reservas.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	// UpdateStatus devuelve domain.ErrNotFound si la reserva no existe.
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (entity.BookingStats, error)
}
