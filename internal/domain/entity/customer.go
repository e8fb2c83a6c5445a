package entity

import "time"

// CustomerSummary vista agregada de un cliente, construida agrupando sus
// reservas por email. No existe tabla de clientes.
type CustomerSummary struct {
	Email         string
	Name          string // datos de la reserva más reciente
	Phone         string
	Address       string
	BookingCount  int
	LatestStatus  string
	FirstBooking  time.Time
	LatestBooking time.Time
}
