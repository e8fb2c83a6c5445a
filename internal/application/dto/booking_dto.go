package dto

import (
	"time"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// CreateBookingRequest campos de texto del formulario multipart de
// POST /api/bookings. Los tres documentos llegan como archivos aparte.
type CreateBookingRequest struct {
	Name          string `form:"name"`
	Phone         string `form:"phone"`
	Email         string `form:"email"`
	Address       string `form:"address"`
	Requirement   string `form:"requirement"`
	PreferredDate string `form:"preferredDate"`
}

// UpdateBookingStatusRequest body para PUT /api/bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse reserva en respuestas. Documents: tipo → URL.
type BookingResponse struct {
	ID            string            `json:"id"`
	Reference     string            `json:"reference"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	Requirement   string            `json:"requirement"`
	PreferredDate string            `json:"preferred_date"`
	Status        string            `json:"status"`
	Documents     map[string]string `json:"documents"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BookingListResponse respuesta de GET /api/bookings.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DocumentURLResponse respuesta de GET /api/bookings/:id/documents/:docType.
type DocumentURLResponse struct {
	DocType string `json:"doc_type"`
	URL     string `json:"url"`
}

// CustomerResponse cliente derivado de sus reservas.
type CustomerResponse struct {
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	BookingCount  int       `json:"booking_count"`
	LatestStatus  string    `json:"latest_status"`
	FirstBooking  time.Time `json:"first_booking"`
	LatestBooking time.Time `json:"latest_booking"`
}

// CustomerDetailResponse cliente con su historial de reservas.
type CustomerDetailResponse struct {
	CustomerResponse
	Bookings []BookingResponse `json:"bookings"`
}

// CustomerListResponse respuesta de GET /api/customers.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewBookingResponse mapea la entidad; solo se listan los documentos subidos.
func NewBookingResponse(b *entity.Booking) BookingResponse {
	docs := make(map[string]string, len(entity.BookingDocTypes))
	for _, dt := range entity.BookingDocTypes {
		if u := b.DocumentURL(dt); u != "" {
			docs[dt] = u
		}
	}
	return BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		Name:          b.Name,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		Requirement:   b.Requirement,
		PreferredDate: b.PreferredDate,
		Status:        b.Status,
		Documents:     docs,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// NewBookingResponses mapea una lista (nunca devuelve nil).
func NewBookingResponses(list []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, NewBookingResponse(b))
	}
	return out
}

// NewCustomerResponse mapea la vista agregada.
func NewCustomerResponse(c *entity.CustomerSummary) CustomerResponse {
	return CustomerResponse{
		Email:         c.Email,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		BookingCount:  c.BookingCount,
		LatestStatus:  c.LatestStatus,
		FirstBooking:  c.FirstBooking,
		LatestBooking: c.LatestBooking,
	}
}
