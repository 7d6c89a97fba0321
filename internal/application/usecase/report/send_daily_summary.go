package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// SendDailySummaryInput represents the input for emailing a day's summary.
type SendDailySummaryInput struct {
	Date          string
	Recipient     string
	RecipientName string
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

// SendDailySummaryOutput represents the result of sending the summary.
type SendDailySummaryOutput struct {
	Date       string `json:"date"`
	Recipient  string `json:"recipient"`
	OrderCount int    `json:"order_count"`
	MessageID  string `json:"message_id"`
}

// SendDailySummaryUseCase emails a day's summary with its PDF attached.
type SendDailySummaryUseCase struct {
	summary  *GetDailySummaryUseCase
	renderer adapter.SummaryRenderer
	sender   adapter.EmailSender
}

// NewSendDailySummaryUseCase creates a new SendDailySummaryUseCase instance.
func NewSendDailySummaryUseCase(
	summary *GetDailySummaryUseCase,
	renderer adapter.SummaryRenderer,
	sender adapter.EmailSender,
) *SendDailySummaryUseCase {
	return &SendDailySummaryUseCase{
		summary:  summary,
		renderer: renderer,
		sender:   sender,
	}
}

// Execute builds, renders and sends the summary.
func (uc *SendDailySummaryUseCase) Execute(ctx context.Context, input SendDailySummaryInput) (*SendDailySummaryOutput, error) {
	recipient := strings.TrimSpace(input.Recipient)
	if recipient == "" {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeMissingRecipient,
			"recipient email is required",
			domainerror.ErrMissingRecipient,
		)
	}

	summary, err := uc.summary.Execute(ctx, GetDailySummaryInput{
		Date:          input.Date,
		ClientID:      input.ClientID,
		DistributorID: input.DistributorID,
		AuthToken:     input.AuthToken,
	})
	if err != nil {
		return nil, err
	}

	html, text, err := uc.renderer.RenderEmail(ctx, summary)
	if err != nil {
		return nil, renderError("email", err)
	}

	pdf, err := uc.renderer.RenderPDF(ctx, summary)
	if err != nil {
		return nil, renderError("pdf", err)
	}

	day := DayKey(summary.Date)
	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      recipient,
		Name:    input.RecipientName,
		Subject: fmt.Sprintf("Daily summary for %s", day),
		HTML:    html,
		Text:    text,
		Attachments: []adapter.EmailAttachment{
			{
				Filename:    fmt.Sprintf("daily-summary-%s.pdf", day),
				ContentType: "application/pdf",
				Content:     pdf,
			},
		},
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		if errors.As(err, &emailErr) {
			return nil, err
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"failed to send summary email",
			fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, err),
		)
	}

	slog.Info("Daily summary sent",
		"date", day,
		"recipient", recipient,
		"orders", summary.OrderCount,
	)

	return &SendDailySummaryOutput{
		Date:       day,
		Recipient:  recipient,
		OrderCount: summary.OrderCount,
		MessageID:  result.ResendID,
	}, nil
}

func renderError(kind string, err error) error {
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemplateRenderFailed,
		"failed to render summary "+kind,
		fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
	)
}
