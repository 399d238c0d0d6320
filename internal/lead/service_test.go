package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthyai/chat-backend/internal/model"
	"github.com/earthyai/chat-backend/pkg/logger"
)

// fakeMailer is a mail.Mailer test double.
type fakeMailer struct {
	err         error
	calls       int
	lastSubject string
	lastBody    string
}

func (f *fakeMailer) Send(_ context.Context, subject, body string) error {
	f.calls++
	f.lastSubject = subject
	f.lastBody = body
	return f.err
}

func validLead() *model.LeadRequest {
	return &model.LeadRequest{
		BusinessName: "Acme Plumbing",
		Website:      "https://acmeplumbing.example",
		Email:        "owner@acmeplumbing.example",
		Phone:        "555-0100",
		Message:      "Interested in the chat widget.",
	}
}

// TestForward_Success verifies a valid lead is rendered and dispatched once.
func TestForward_Success(t *testing.T) {
	m := &fakeMailer{}
	svc := NewService(m, time.Second, logger.NewNop())

	err := svc.Forward(context.Background(), validLead())
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "New lead: Acme Plumbing", m.lastSubject)
	assert.Contains(t, m.lastBody, "Business: Acme Plumbing")
	assert.Contains(t, m.lastBody, "Website: https://acmeplumbing.example")
	assert.Contains(t, m.lastBody, "Email: owner@acmeplumbing.example")
	assert.Contains(t, m.lastBody, "Phone: 555-0100")
	assert.Contains(t, m.lastBody, "Interested in the chat widget.")
}

// TestForward_ValidationBeforeDispatch verifies missing or implausible
// fields fail fast without contacting the mailer.
func TestForward_ValidationBeforeDispatch(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.LeadRequest)
	}{
		{"missing business name", func(r *model.LeadRequest) { r.BusinessName = "  " }},
		{"missing website", func(r *model.LeadRequest) { r.Website = "" }},
		{"missing email", func(r *model.LeadRequest) { r.Email = "" }},
		{"email without at", func(r *model.LeadRequest) { r.Email = "not-an-email" }},
		{"email without domain dot", func(r *model.LeadRequest) { r.Email = "a@b" }},
		{"email with display name", func(r *model.LeadRequest) { r.Email = "Bob <bob@example.com>" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeMailer{}
			svc := NewService(m, time.Second, logger.NewNop())

			req := validLead()
			tc.mutate(req)

			err := svc.Forward(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, m.calls)
		})
	}
}

// TestForward_OptionalFieldsOmitted verifies phone and message stay out of
// the body when absent.
func TestForward_OptionalFieldsOmitted(t *testing.T) {
	m := &fakeMailer{}
	svc := NewService(m, time.Second, logger.NewNop())

	req := validLead()
	req.Phone = ""
	req.Message = ""

	require.NoError(t, svc.Forward(context.Background(), req))
	assert.NotContains(t, m.lastBody, "Phone:")
	assert.NotContains(t, m.lastBody, "Message:")
}

// TestForward_DispatchFault verifies a collaborator failure maps to
// ErrDispatch and is not retried.
func TestForward_DispatchFault(t *testing.T) {
	m := &fakeMailer{err: errors.New("resend: 500")}
	svc := NewService(m, time.Second, logger.NewNop())

	err := svc.Forward(context.Background(), validLead())
	assert.ErrorIs(t, err, ErrDispatch)
	assert.Equal(t, 1, m.calls)
}

// TestForward_NotConfigured verifies a nil mailer disables the path but
// validation still runs first.
func TestForward_NotConfigured(t *testing.T) {
	svc := NewService(nil, time.Second, logger.NewNop())

	assert.False(t, svc.Configured())

	err := svc.Forward(context.Background(), validLead())
	assert.ErrorIs(t, err, ErrNotConfigured)

	req := validLead()
	req.Email = "bad"
	err = svc.Forward(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}
