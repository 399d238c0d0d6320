package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/earthyai/chat-backend/internal/lead"
	"github.com/earthyai/chat-backend/internal/mail"
	"github.com/earthyai/chat-backend/internal/middleware"
	"github.com/earthyai/chat-backend/internal/model"
	"github.com/earthyai/chat-backend/pkg/logger"
)

// stubMailer is a mail.Mailer test double.
type stubMailer struct {
	err   error
	calls int
}

func (s *stubMailer) Send(_ context.Context, _, _ string) error {
	s.calls++
	return s.err
}

func newLeadHandler(m mail.Mailer) *LeadHandler {
	svc := lead.NewService(m, time.Second, logger.NewNop())
	return NewLeadHandler(svc, logger.NewNop())
}

func doLead(t *testing.T, h *LeadHandler, body string) (*httptest.ResponseRecorder, model.LeadResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	var resp model.LeadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

const validLeadBody = `{
	"business_name": "Acme Plumbing",
	"website": "https://acmeplumbing.example",
	"email": "owner@acmeplumbing.example"
}`

// TestLead_Success verifies 200 {success:true} on a valid submission.
func TestLead_Success(t *testing.T) {
	m := &stubMailer{}
	rec, resp := doLead(t, newLeadHandler(m), validLeadBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, m.calls)
}

// TestLead_InvalidEmail verifies 400 and that the mail collaborator is
// never contacted.
func TestLead_InvalidEmail(t *testing.T) {
	m := &stubMailer{}
	body := strings.Replace(validLeadBody, "owner@acmeplumbing.example", "not-an-email", 1)

	rec, resp := doLead(t, newLeadHandler(m), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Zero(t, m.calls)
}

// TestLead_NotConfigured verifies 503 when the mail collaborator is absent.
func TestLead_NotConfigured(t *testing.T) {
	rec, resp := doLead(t, newLeadHandler(nil), validLeadBody)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, resp.Success)
}

// TestLead_DispatchFault verifies 500 on collaborator failure.
func TestLead_DispatchFault(t *testing.T) {
	m := &stubMailer{err: errors.New("resend: 500")}
	rec, resp := doLead(t, newLeadHandler(m), validLeadBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, 1, m.calls)
}

// TestLead_DispatchFaultLogsDetail verifies the unexpected-fault branch
// keeps the full error server-side, tagged with the request correlation ID,
// while the client body stays generic.
func TestLead_DispatchFaultLogsDetail(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	svc := lead.NewService(&stubMailer{err: errors.New("resend: 500")}, time.Second, log)
	h := NewLeadHandler(svc, log)

	req := httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(validLeadBody))
	req = req.WithContext(context.WithValue(req.Context(), middleware.CorrelationIDKey, "corr-123"))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "resend")

	entries := logs.FilterMessage("lead submission failed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "corr-123", fields["correlation_id"])
	logged, ok := fields["error"].(string)
	require.True(t, ok)
	assert.Contains(t, logged, "resend: 500")
}

// TestLead_InvalidBody verifies undecodable JSON gets a 400.
func TestLead_InvalidBody(t *testing.T) {
	m := &stubMailer{}
	rec, resp := doLead(t, newLeadHandler(m), `{{{`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Zero(t, m.calls)
}
