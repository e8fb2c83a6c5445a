package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/notify"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// ── Brevo ─────────────────────────────────────────────────────────────────────

func TestBrevoSender_EnviaPayloadYCabeceras(t *testing.T) {
	var got map[string]any
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<1@brevo>"}`))
	}))
	defer srv.Close()

	s := notify.NewBrevoSender("key-123", "A Z ENTERPRISES", "no-reply@azenterprises.in").WithEndpoint(srv.URL)
	err := s.SendEmail(context.Background(), ports.EmailMessage{
		To: "cliente@example.com", Subject: "Booking Confirmation - A Z ENTERPRISES", HTML: "<p>ok</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "key-123", apiKey)
	assert.Equal(t, "Booking Confirmation - A Z ENTERPRISES", got["subject"])
	assert.Equal(t, "<p>ok</p>", got["htmlContent"])
	sender := got["sender"].(map[string]any)
	assert.Equal(t, "no-reply@azenterprises.in", sender["email"])
	to := got["to"].([]any)
	require.Len(t, to, 1)
	assert.Equal(t, "cliente@example.com", to[0].(map[string]any)["email"])
}

func TestBrevoSender_ErrorDeLaAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer srv.Close()

	err := notify.NewBrevoSender("bad", "x", "x@y.z").WithEndpoint(srv.URL).
		SendEmail(context.Background(), ports.EmailMessage{To: "a@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Key not found")
}

func TestBrevoSender_SinAPIKey(t *testing.T) {
	err := notify.NewBrevoSender("", "x", "x@y.z").SendEmail(context.Background(), ports.EmailMessage{To: "a@b.c"})
	assert.Error(t, err)
}

// ── SMTP ──────────────────────────────────────────────────────────────────────

func TestSMTPSender_ArmaMensajeHTML(t *testing.T) {
	s := notify.NewSMTPSender("smtp.example.com", 587, "u", "p", "A Z ENTERPRISES", "no-reply@azenterprises.in")
	m := s.BuildMessage(ports.EmailMessage{To: "a@b.c", Subject: "Your OTP for Admin Login - A Z ENTERPRISES", HTML: "<b>123456</b>"})

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "To: a@b.c")
	assert.Contains(t, raw, "Subject: Your OTP for Admin Login - A Z ENTERPRISES")
	assert.Contains(t, raw, "no-reply@azenterprises.in")
	assert.Contains(t, raw, "text/html")
}

func TestSMTPSender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := notify.NewSMTPSender("127.0.0.1", 1, "", "", "x", "x@y.z")
	err := s.SendEmail(ctx, ports.EmailMessage{To: "a@b.c"})
	assert.ErrorIs(t, err, context.Canceled)
}

// ── SMS ───────────────────────────────────────────────────────────────────────

func TestSMSGateway_EnviaConTokenYPrefijo(t *testing.T) {
	var got map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := notify.NewSMSGateway(srv.URL, "tok", "AZENTP").SendMessage(context.Background(), "94190 00000", "hola")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "+919419000000", got["to"])
	assert.Equal(t, "AZENTP", got["from"])
	assert.Equal(t, "hola", got["message"])
}

func TestSMSGateway_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := notify.NewSMSGateway(srv.URL, "", "").SendMessage(context.Background(), "9419000000", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919419000000", notify.NormalizePhone(" 94190-00000 "))
	assert.Equal(t, "+919419000000", notify.NormalizePhone("+91 94190 00000"))
	assert.Equal(t, "919419000000", notify.NormalizePhone("91-9419000000"))
	assert.Equal(t, "", notify.NormalizePhone("n/a"))
}

// ── Log ───────────────────────────────────────────────────────────────────────

func TestLogSender_NoIncluyeElCuerpo(t *testing.T) {
	var buf bytes.Buffer
	s := notify.NewLogSender(logger.NewWithWriter(&buf, "info"))

	require.NoError(t, s.SendEmail(context.Background(), ports.EmailMessage{To: "a@b.c", Subject: "OTP", HTML: "código 482913"}))
	require.NoError(t, s.SendMessage(context.Background(), "9419000000", "código 482913"))

	assert.Contains(t, buf.String(), "a@b.c")
	assert.NotContains(t, buf.String(), "482913")
}
