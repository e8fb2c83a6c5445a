// Package contact guarda los mensajes del formulario de contacto del sitio.
package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

// Mensajes visibles en el formulario.
const (
	MsgRequiredFields = "Name, email, and message are required"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgSent           = "Message sent successfully! We will contact you soon."
)

const maxMessageLen = 5000

// Notifier reenvía el mensaje al administrador sin bloquear.
type Notifier interface {
	ContactReceived(c *entity.ContactSubmission)
}

// ContactUseCase alta y listado de mensajes de contacto.
type ContactUseCase struct {
	repo     repository.ContactRepository
	notifier Notifier
	now      func() time.Time
}

// NewContactUseCase construye el caso de uso. notifier puede ser nil.
func NewContactUseCase(repo repository.ContactRepository, notifier Notifier) *ContactUseCase {
	return &ContactUseCase{repo: repo, notifier: notifier, now: time.Now}
}

// Submit valida y guarda el mensaje y avisa al administrador.
func (uc *ContactUseCase) Submit(ctx context.Context, in dto.ContactRequest) (*dto.MessageResponse, error) {
	c := &entity.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return nil, domain.NewValidationError(MsgRequiredFields)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return nil, domain.NewValidationError(MsgInvalidEmail)
	}
	if len(c.Message) > maxMessageLen {
		c.Message = c.Message[:maxMessageLen]
	}
	c.ID = uuid.New().String()
	c.CreatedAt = uc.now()

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("guardar mensaje de contacto: %w", err)
	}
	if uc.notifier != nil {
		uc.notifier.ContactReceived(c)
	}
	return &dto.MessageResponse{Message: MsgSent}, nil
}

// List mensajes recibidos, el más reciente primero.
func (uc *ContactUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ContactListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar mensajes de contacto: %w", err)
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ContactResponse{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	return &dto.ContactListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
