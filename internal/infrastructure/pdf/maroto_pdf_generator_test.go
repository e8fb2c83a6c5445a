package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/pdf"
)

func TestGenerateBookingSlip_GeneraPDF(t *testing.T) {
	b := &entity.Booking{
		ID:            "b-1",
		Reference:     "BK-7F3A2C",
		Name:          "Mohd Yousuf",
		Phone:         "9419000000",
		Email:         "yousuf@example.com",
		Address:       "Main Road, Handwara",
		Requirement:   "5kW rooftop",
		PreferredDate: "2026-10-20",
		AadharURL:     "https://cdn.example.com/bookings/b-1/aadhar.pdf",
		Status:        entity.BookingStatusPending,
		CreatedAt:     time.Date(2026, 10, 16, 4, 30, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoSlipGenerator().GenerateBookingSlip(context.Background(), b, entity.DefaultCompanyProfile())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "debe empezar con la cabecera PDF")
	assert.Greater(t, len(out), 1000)
}

func TestGenerateBookingSlip_CamposVacios(t *testing.T) {
	b := &entity.Booking{Reference: "BK-000001"}

	out, err := pdf.NewMarotoSlipGenerator().GenerateBookingSlip(context.Background(), b, entity.CompanyProfile{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
