// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/catering-ops/backend/internal/application/adapter"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
	replyTo   string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail, replyTo string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		replyTo:   replyTo,
	}
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{formatRecipient(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		ReplyTo: c.replyTo,
	}

	for _, a := range input.Attachments {
		// Resend derives the content type from the filename
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:  a.Content,
			Filename: a.Filename,
		})
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			err,
		)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

func formatRecipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// isPermanentError reports whether a Resend error should not be retried.
// 401, 403 and 422 are permanent; 429 and 5xx are temporary.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// IsPermanent reports whether err is an email error that must not be retried.
func IsPermanent(err error) bool {
	var emailErr *domainerror.EmailError
	return errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
}

// LogSender is an adapter.EmailSender that logs and records messages instead of sending them.
// Used when no Resend API key is configured and in tests.
type LogSender struct {
	mu         sync.Mutex
	SentEmails []adapter.SendEmailInput
	failures   []error
}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send records the message, or returns the next queued failure.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return nil, err
	}

	s.SentEmails = append(s.SentEmails, input)
	slog.Info("Email recorded without sending",
		"to", input.To,
		"subject", input.Subject,
		"attachments", len(input.Attachments),
	)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("local-%d", len(s.SentEmails)),
	}, nil
}

// FailNext queues errors returned by the next calls to Send.
func (s *LogSender) FailNext(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, errs...)
}

// Sent returns a copy of the recorded messages.
func (s *LogSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), s.SentEmails...)
}

// Reset clears recorded messages and queued failures.
func (s *LogSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SentEmails = nil
	s.failures = nil
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
)
