package repository

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para el formulario de contacto.
type ContactRepository interface {
	Create(ctx context.Context, submission *entity.ContactSubmission) error
	List(ctx context.Context, limit, offset int) ([]*entity.ContactSubmission, error)
}
