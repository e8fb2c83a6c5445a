package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/application/contact"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

type memContacts struct {
	saved []*entity.ContactSubmission
}

func (m *memContacts) Create(_ context.Context, c *entity.ContactSubmission) error {
	m.saved = append(m.saved, c)
	return nil
}

func (m *memContacts) List(_ context.Context, limit, _ int) ([]*entity.ContactSubmission, error) {
	if len(m.saved) > limit {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

type captureNotifier struct {
	got []*entity.ContactSubmission
}

func (n *captureNotifier) ContactReceived(c *entity.ContactSubmission) { n.got = append(n.got, c) }

func TestSubmit_GuardaYAvisa(t *testing.T) {
	repo, n := &memContacts{}, &captureNotifier{}
	uc := contact.NewContactUseCase(repo, n)

	res, err := uc.Submit(context.Background(), dto.ContactRequest{
		Name: " Asha ", Email: "asha@example.com", Message: "Quiero una cotización",
	})
	require.NoError(t, err)

	assert.Equal(t, contact.MsgSent, res.Message)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Asha", repo.saved[0].Name)
	assert.NotEmpty(t, repo.saved[0].ID)
	require.Len(t, n.got, 1)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "asha@example.com", list.Items[0].Email)
}

func TestSubmit_Validacion(t *testing.T) {
	uc := contact.NewContactUseCase(&memContacts{}, nil)

	cases := map[string]struct {
		in  dto.ContactRequest
		msg string
	}{
		"sin mensaje": {dto.ContactRequest{Name: "A", Email: "a@b.c"}, contact.MsgRequiredFields},
		"sin nombre":  {dto.ContactRequest{Email: "a@b.c", Message: "hola"}, contact.MsgRequiredFields},
		"email malo":  {dto.ContactRequest{Name: "A", Email: "no-es-email", Message: "hola"}, contact.MsgInvalidEmail},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Submit(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.msg, ve.Message)
		})
	}
}
