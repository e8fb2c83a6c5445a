package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
)

var _ ports.EmailSender = (*BrevoSender)(nil)

const brevoSendURL = "https://api.brevo.com/v3/smtp/email"

// BrevoSender adaptador de EmailSender sobre la API transaccional de Brevo.
// Usa net/http; Brevo no publica un SDK Go mantenido.
type BrevoSender struct {
	apiKey     string
	fromName   string
	fromEmail  string
	endpoint   string
	httpClient *http.Client
}

// NewBrevoSender construye el adaptador.
func NewBrevoSender(apiKey, fromName, fromEmail string) *BrevoSender {
	return &BrevoSender{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
		endpoint:  brevoSendURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithEndpoint cambia la URL de la API (tests).
func (s *BrevoSender) WithEndpoint(url string) *BrevoSender {
	s.endpoint = url
	return s
}

// ── Protocolo Brevo ───────────────────────────────────────────────────────────

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendEmail envía msg. Cualquier respuesta distinta de 2xx es error.
func (s *BrevoSender) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	if s.apiKey == "" {
		return fmt.Errorf("brevo: BREVO_API_KEY no configurado")
	}
	if msg.To == "" {
		return fmt.Errorf("brevo: destinatario vacío")
	}

	payload := brevoRequest{
		Sender:      brevoAddress{Name: s.fromName, Email: s.fromEmail},
		To:          []brevoAddress{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("brevo: crear HTTP request: %w", err)
	}
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("brevo: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("brevo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	var e brevoError
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		return fmt.Errorf("brevo: error %d (%s): %s", resp.StatusCode, e.Code, e.Message)
	}
	return fmt.Errorf("brevo: HTTP %d: %s", resp.StatusCode, string(raw))
}
