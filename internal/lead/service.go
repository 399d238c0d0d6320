// Package lead validates and forwards lead-capture submissions.
package lead

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/earthyai/chat-backend/internal/model"
	mailer "github.com/earthyai/chat-backend/internal/mail"
	"github.com/earthyai/chat-backend/pkg/logger"
	"github.com/earthyai/chat-backend/pkg/metrics"
)

var (
	// ErrValidation means required fields are missing or implausible.
	// Detected before any outbound call.
	ErrValidation = errors.New("lead: missing or invalid required fields")
	// ErrNotConfigured means the mail collaborator is not set up.
	ErrNotConfigured = errors.New("lead: mail dispatch is not configured")
	// ErrDispatch means the mail collaborator failed. Never retried.
	ErrDispatch = errors.New("lead: mail dispatch failed")
)

// Service forwards validated leads to the mail collaborator. Stateless;
// a lead has no lifecycle beyond the single forwarding call.
type Service struct {
	mailer  mailer.Mailer
	timeout time.Duration
	logger  *logger.Logger
}

// NewService creates a lead service. A nil mailer disables the path;
// Forward then returns ErrNotConfigured.
func NewService(m mailer.Mailer, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		mailer:  m,
		timeout: timeout,
		logger:  log,
	}
}

// Configured reports whether lead forwarding can dispatch mail.
func (s *Service) Configured() bool {
	return s.mailer != nil
}

// Forward validates the lead and dispatches the notification email.
func (s *Service) Forward(ctx context.Context, req *model.LeadRequest) error {
	if err := validate(req); err != nil {
		metrics.RecordLead("invalid")
		return err
	}

	if s.mailer == nil {
		return ErrNotConfigured
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	subject := "New lead: " + strings.TrimSpace(req.BusinessName)
	if err := s.mailer.Send(cctx, subject, renderBody(req)); err != nil {
		s.logger.Error("lead dispatch failed", zap.Error(err))
		metrics.RecordLead("dispatch_error")
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	metrics.RecordLead("forwarded")
	return nil
}

func validate(req *model.LeadRequest) error {
	if strings.TrimSpace(req.BusinessName) == "" ||
		strings.TrimSpace(req.Website) == "" ||
		!plausibleEmail(req.Email) {
		return ErrValidation
	}
	return nil
}

// plausibleEmail checks syntax only; deliverability is the collaborator's
// problem.
func plausibleEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

func renderBody(req *model.LeadRequest) string {
	var b strings.Builder
	b.WriteString("New lead from the website chat widget.\n\n")
	fmt.Fprintf(&b, "Business: %s\n", strings.TrimSpace(req.BusinessName))
	fmt.Fprintf(&b, "Website: %s\n", strings.TrimSpace(req.Website))
	fmt.Fprintf(&b, "Email: %s\n", strings.TrimSpace(req.Email))
	if p := strings.TrimSpace(req.Phone); p != "" {
		fmt.Fprintf(&b, "Phone: %s\n", p)
	}
	if m := strings.TrimSpace(req.Message); m != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", m)
	}
	return b.String()
}
