package repository

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// CustomerRepository vista de clientes derivada de las reservas (agrupadas
// por email, sin distinguir mayúsculas). Solo lectura.
type CustomerRepository interface {
	// ListSummaries filtra por nombre, email o teléfono y ordena por la
	// reserva más reciente.
	ListSummaries(ctx context.Context, search string, limit, offset int) ([]*entity.CustomerSummary, error)
	GetByEmail(ctx context.Context, email string) (*entity.CustomerSummary, error)
	// BookingsByEmail historial de reservas del cliente, la más reciente primero.
	BookingsByEmail(ctx context.Context, email string) ([]*entity.Booking, error)
}
