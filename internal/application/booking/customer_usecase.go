package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

// CustomerUseCase consulta de clientes agrupados por email a partir de sus reservas.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// List devuelve los clientes, el de reserva más reciente primero.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListSummaries(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get devuelve el cliente con su historial de reservas.
func (uc *CustomerUseCase) Get(ctx context.Context, email string) (*dto.CustomerDetailResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	bookings, err := uc.repo.BookingsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("historial de %s: %w", email, err)
	}
	return &dto.CustomerDetailResponse{
		CustomerResponse: dto.NewCustomerResponse(c),
		Bookings:         dto.NewBookingResponses(bookings),
	}, nil
}
