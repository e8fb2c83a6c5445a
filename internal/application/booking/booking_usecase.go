// Package booking contiene los casos de uso de reservas de instalación y la
// vista de clientes derivada de ellas.
package booking

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// Mensajes de validación visibles en el formulario público y en el panel.
const (
	MsgRequiredFields = "All fields are required"
	MsgRequiredDocs   = "All documents are required (Aadhar, Electricity Bill, Bank Passbook)"
	MsgFileTooLarge   = "File size too large. Maximum %dMB allowed."
	MsgInvalidType    = "Invalid file type. Only PDF, JPG and PNG are allowed."
	MsgInvalidStatus  = "Invalid status. Use Pending, Confirmed, Completed or Cancelled"
	MsgInvalidDocType = "Invalid document type"
)

// DefaultMaxUploadBytes tamaño máximo por documento.
const DefaultMaxUploadBytes int64 = 5 << 20

const recentLimit = 100

const cleanupTimeout = 15 * time.Second

// extensiones por tipo MIME detectado en el contenido (no en el nombre).
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// Upload documento recibido en el formulario multipart.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type preparedUpload struct {
	docType     string
	contentType string
	ext         string
	size        int64
	body        io.Reader
}

// BookingUseCase alta pública de reservas y su gestión desde el panel.
type BookingUseCase struct {
	repo      repository.BookingRepository
	storage   ports.DocumentStorage
	slips     SlipGenerator
	notifier  Notifier
	company   entity.CompanyProfile
	maxUpload int64
	log       *logger.Logger
	now       func() time.Time
}

// NewBookingUseCase construye el caso de uso. notifier puede ser nil.
func NewBookingUseCase(
	repo repository.BookingRepository,
	storage ports.DocumentStorage,
	slips SlipGenerator,
	notifier Notifier,
	company entity.CompanyProfile,
	maxUpload int64,
	log *logger.Logger,
) *BookingUseCase {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &BookingUseCase{
		repo:      repo,
		storage:   storage,
		slips:     slips,
		notifier:  notifier,
		company:   company,
		maxUpload: maxUpload,
		log:       log.Component("booking"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *BookingUseCase) WithClock(now func() time.Time) *BookingUseCase {
	uc.now = now
	return uc
}

// MaxUploadBytes límite por documento (el handler lo usa para cortar antes de leer).
func (uc *BookingUseCase) MaxUploadBytes() int64 { return uc.maxUpload }

// Create valida el formulario y los tres documentos, los sube al
// almacenamiento y guarda la reserva como Pending. Los avisos salen en
// segundo plano.
func (uc *BookingUseCase) Create(ctx context.Context, in dto.CreateBookingRequest, docs map[string]Upload) (*dto.BookingResponse, error) {
	b := &entity.Booking{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
		Requirement:   strings.TrimSpace(in.Requirement),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
	}
	for _, v := range []string{b.Name, b.Phone, b.Email, b.Address, b.Requirement, b.PreferredDate} {
		if v == "" {
			return nil, domain.NewValidationError(MsgRequiredFields)
		}
	}

	// Todo se valida antes de subir nada.
	prepared := make([]preparedUpload, 0, len(entity.BookingDocTypes))
	for _, dt := range entity.BookingDocTypes {
		up, ok := docs[dt]
		if !ok || up.Body == nil || up.Size == 0 {
			return nil, domain.NewValidationError(MsgRequiredDocs)
		}
		p, err := uc.prepare(dt, up)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, p)
	}

	now := uc.now()
	b.ID = uuid.New().String()
	b.Reference = NewReference()
	b.Status = entity.BookingStatusPending
	b.CreatedAt, b.UpdatedAt = now, now

	uploaded := make([]string, 0, len(prepared))
	for _, p := range prepared {
		key := fmt.Sprintf("bookings/%s/%s%s", b.ID, p.docType, p.ext)
		url, err := uc.storage.Put(ctx, key, p.contentType, p.body, p.size)
		if err != nil {
			uc.discardUploads(ctx, b.ID, uploaded)
			return nil, fmt.Errorf("subir documento %s: %w", p.docType, err)
		}
		uploaded = append(uploaded, key)
		b.SetDocumentURL(p.docType, url)
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		uc.discardUploads(ctx, b.ID, uploaded)
		return nil, fmt.Errorf("crear reserva: %w", err)
	}
	uc.log.Info().Str("booking_id", b.ID).Str("reference", b.Reference).Msg("reserva recibida")

	if uc.notifier != nil {
		uc.notifier.BookingReceived(b)
	}
	res := dto.NewBookingResponse(b)
	return &res, nil
}

// discardUploads borra los documentos de una reserva que no llegó a
// guardarse. Lo que no se pueda borrar queda en el log como huérfano.
func (uc *BookingUseCase) discardUploads(ctx context.Context, bookingID string, keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	for _, key := range keys {
		if err := uc.storage.Delete(ctx, key); err != nil {
			uc.log.Error().Err(err).Str("booking_id", bookingID).Str("key", key).Msg("documento huérfano en el almacenamiento")
		}
	}
}

func (uc *BookingUseCase) prepare(docType string, up Upload) (preparedUpload, error) {
	if up.Size > uc.maxUpload {
		return preparedUpload{}, domain.NewValidationError(fmt.Sprintf(MsgFileTooLarge, uc.maxUpload>>20))
	}
	br := bufio.NewReaderSize(up.Body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return preparedUpload{}, fmt.Errorf("leer documento %s: %w", docType, err)
	}
	ct := http.DetectContentType(head)
	ext, ok := allowedTypes[ct]
	if !ok {
		return preparedUpload{}, domain.NewValidationError(MsgInvalidType)
	}
	return preparedUpload{docType: docType, contentType: ct, ext: ext, size: up.Size, body: br}, nil
}

// Get devuelve una reserva.
func (uc *BookingUseCase) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewBookingResponse(b)
	return &res, nil
}

// List filtra por texto (nombre, email o teléfono) y estado; la más reciente primero.
func (uc *BookingUseCase) List(ctx context.Context, search, status string, page dto.PageRequest) (*dto.BookingListResponse, error) {
	page.DefaultPage()
	status = strings.TrimSpace(status)
	if status != "" && !entity.ValidBookingStatus(status) {
		return nil, domain.NewValidationError(MsgInvalidStatus)
	}
	list, err := uc.repo.List(ctx, entity.BookingFilter{
		Search: strings.TrimSpace(search),
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}
	return &dto.BookingListResponse{
		Items: dto.NewBookingResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Recent últimas n reservas (dashboard).
func (uc *BookingUseCase) Recent(ctx context.Context, n int) ([]*entity.Booking, error) {
	if n <= 0 || n > recentLimit {
		n = recentLimit
	}
	list, err := uc.repo.List(ctx, entity.BookingFilter{Limit: n})
	if err != nil {
		return nil, fmt.Errorf("reservas recientes: %w", err)
	}
	return list, nil
}

// UpdateStatus cambia el estado y avisa al cliente. No hay transiciones
// prohibidas: cualquier estado admitido puede pasar a cualquier otro.
func (uc *BookingUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.BookingResponse, error) {
	status = strings.TrimSpace(status)
	if !entity.ValidBookingStatus(status) {
		return nil, domain.NewValidationError(MsgInvalidStatus)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("actualizar estado de %s: %w", id, err)
	}
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("booking_id", b.ID).Str("status", status).Msg("estado de reserva actualizado")

	if uc.notifier != nil {
		uc.notifier.BookingStatusChanged(b)
	}
	res := dto.NewBookingResponse(b)
	return &res, nil
}

// Delete elimina la reserva. Los documentos subidos se conservan en el almacenamiento.
func (uc *BookingUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar reserva %s: %w", id, err)
	}
	return nil
}

// DocumentURL URL del documento docType de la reserva.
func (uc *BookingUseCase) DocumentURL(ctx context.Context, id, docType string) (*dto.DocumentURLResponse, error) {
	if !entity.ValidDocType(docType) {
		return nil, domain.NewValidationError(MsgInvalidDocType)
	}
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	url := b.DocumentURL(docType)
	if url == "" {
		return nil, fmt.Errorf("documento %s de %s: %w", docType, id, domain.ErrNotFound)
	}
	return &dto.DocumentURLResponse{DocType: docType, URL: url}, nil
}

// Slip genera el comprobante PDF de la reserva.
func (uc *BookingUseCase) Slip(ctx context.Context, id string) ([]byte, string, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.slips.GenerateBookingSlip(ctx, b, uc.company)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante de %s: %w", b.Reference, err)
	}
	return pdf, "Booking_" + b.Reference + ".pdf", nil
}

func (uc *BookingUseCase) load(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener reserva: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// NewReference código corto para el comprobante: BK- y seis hexadecimales.
func NewReference() string {
	id := uuid.New()
	return fmt.Sprintf("BK-%X", id[:3])
}
