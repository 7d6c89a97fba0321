package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/catering-ops/backend/internal/application/usecase/report"
)

// summarySender sends one day's summary to one recipient.
type summarySender interface {
	Execute(ctx context.Context, input report.SendDailySummaryInput) (*report.SendDailySummaryOutput, error)
}

// WorkerConfig holds configuration for the daily summary worker.
type WorkerConfig struct {
	Recipients []string
	// SendAt is the local time of day the summary goes out, formatted "15:04".
	SendAt     string
	Location   *time.Location
	AuthToken  string
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		SendAt:     "06:00",
		Location:   time.UTC,
		MaxRetries: 3,
		RetryDelay: time.Minute,
	}
}

// Worker emails the daily summary to the configured recipients once a day.
type Worker struct {
	sender     summarySender
	recipients []string
	hour       int
	minute     int
	location   *time.Location
	authToken  string
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
}

// NewWorker creates a new daily summary worker.
func NewWorker(sender summarySender, config WorkerConfig) (*Worker, error) {
	at, err := time.Parse("15:04", config.SendAt)
	if err != nil {
		return nil, fmt.Errorf("invalid send time %q: %w", config.SendAt, err)
	}

	loc := config.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Worker{
		sender:     sender,
		recipients: config.Recipients,
		hour:       at.Hour(),
		minute:     at.Minute(),
		location:   loc,
		authToken:  config.AuthToken,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		now:        time.Now,
	}, nil
}

// Start begins the worker loop. It blocks until the context is cancelled.
// Each run at the send time covers the previous day.
func (w *Worker) Start(ctx context.Context) {
	if len(w.recipients) == 0 {
		slog.Info("Daily summary worker disabled, no recipients configured")
		return
	}

	slog.Info("Daily summary worker started",
		"send_at", fmt.Sprintf("%02d:%02d", w.hour, w.minute),
		"location", w.location.String(),
		"recipients", len(w.recipients),
	)

	for {
		next := w.nextRun(w.now())
		timer := time.NewTimer(next.Sub(w.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Daily summary worker shutting down")
			return
		case <-timer.C:
			w.SendFor(ctx, next.AddDate(0, 0, -1))
		}
	}
}

// nextRun returns the first send time strictly after now.
func (w *Worker) nextRun(now time.Time) time.Time {
	local := now.In(w.location)
	run := time.Date(local.Year(), local.Month(), local.Day(), w.hour, w.minute, 0, 0, w.location)
	if !run.After(local) {
		run = time.Date(local.Year(), local.Month(), local.Day()+1, w.hour, w.minute, 0, 0, w.location)
	}
	return run
}

// SendFor sends the summary of the day containing t to every recipient.
// It returns the number of recipients that received it.
func (w *Worker) SendFor(ctx context.Context, t time.Time) int {
	day := report.DayKey(t.In(w.location))
	sent := 0

	for _, recipient := range w.recipients {
		if ctx.Err() != nil {
			return sent
		}
		if w.sendWithRetry(ctx, day, recipient) {
			sent++
		}
	}

	slog.Info("Daily summary run finished",
		"date", day,
		"sent", sent,
		"recipients", len(w.recipients),
	)
	return sent
}

func (w *Worker) sendWithRetry(ctx context.Context, day, recipient string) bool {
	logger := slog.With("date", day, "recipient", recipient)

	for attempt := 1; ; attempt++ {
		result, err := w.sender.Execute(ctx, report.SendDailySummaryInput{
			Date:      day,
			Recipient: recipient,
			AuthToken: w.authToken,
		})
		if err == nil {
			logger.Info("Daily summary delivered", "message_id", result.MessageID, "orders", result.OrderCount)
			return true
		}

		if IsPermanent(err) || attempt > w.maxRetries {
			logger.Error("Daily summary failed", "attempts", attempt, "error", err)
			return false
		}

		logger.Warn("Daily summary failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.retryDelay * time.Duration(attempt)):
		}
	}
}
