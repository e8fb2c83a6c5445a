package booking

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// SlipGenerator define el puerto de salida para el comprobante PDF de una reserva.
type SlipGenerator interface {
	GenerateBookingSlip(ctx context.Context, b *entity.Booking, company entity.CompanyProfile) ([]byte, error)
}

// Notifier avisos al cliente y al administrador. Las implementaciones no
// deben bloquear: la petición HTTP no espera al envío.
type Notifier interface {
	BookingReceived(b *entity.Booking)
	BookingStatusChanged(b *entity.Booking)
}
