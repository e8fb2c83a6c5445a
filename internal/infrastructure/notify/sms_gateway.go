package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
)

var _ ports.MessageSender = (*SMSGateway)(nil)

// SMSGateway adaptador de MessageSender para pasarelas HTTP genéricas
// (POST JSON {to, from, message} con token Bearer).
type SMSGateway struct {
	url        string
	token      string
	sender     string
	httpClient *http.Client
}

// NewSMSGateway construye el adaptador.
func NewSMSGateway(url, token, sender string) *SMSGateway {
	return &SMSGateway{
		url:    url,
		token:  token,
		sender: sender,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// SendMessage envía body a to. Los números de 10 dígitos se prefijan con +91.
func (g *SMSGateway) SendMessage(ctx context.Context, to, body string) error {
	to = NormalizePhone(to)
	if to == "" {
		return fmt.Errorf("sms: teléfono vacío")
	}
	raw, err := json.Marshal(smsRequest{To: to, From: g.sender, Message: body})
	if err != nil {
		return fmt.Errorf("sms: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("sms: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	if g.token != "" {
		req.Header.Set("authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("sms: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("sms: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("sms: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// NormalizePhone deja solo dígitos y un "+" inicial; un número indio de 10
// dígitos recibe el prefijo +91.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) == 10 && !strings.HasPrefix(out, "+") {
		return "+91" + out
	}
	return out
}
