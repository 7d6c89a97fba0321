package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/application/usecase/report"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/email/templates"
	"github.com/catering-ops/backend/internal/integration/export"
)

func newTestRenderer(t *testing.T) *SummaryRenderer {
	t.Helper()
	tmpl, err := templates.NewRenderer()
	require.NoError(t, err)

	exporter := export.NewExporter(export.Config{CompanyName: "Catering Ops", Locale: "en", CurrencySymbol: "$"})
	return NewSummaryRenderer(tmpl, exporter, export.NewFormatter("en", "$"), "Catering Ops")
}

func testSummary() *entity.DailySummary {
	return &entity.DailySummary{
		Date: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Clients: []entity.ClientSummary{{
			ClientName: "Acme <Kitchen>",
			OrderCount: 1,
			Lines: []entity.SummaryLine{{
				OrderNumber: "ORD-20240612-0001",
				ProductName: "Lasagna",
				Options:     []string{"Extras: Cheese", "Size: Family"},
				Quantity:    40,
				UnitPrice:   decimal.NewFromInt(30),
				LineTotal:   decimal.NewFromInt(1200),
			}},
			Subtotal: decimal.NewFromInt(1200),
			Tax:      decimal.NewFromInt(120),
			Total:    decimal.NewFromInt(1320),
		}},
		ProductTotals: []entity.ProductTotal{{ProductName: "Lasagna", Quantity: 40}},
		OrderCount:    1,
		GrandTotal:    decimal.NewFromInt(1320),
	}
}

func TestSummaryRenderer_RenderEmail(t *testing.T) {
	r := newTestRenderer(t)

	html, text, err := r.RenderEmail(context.Background(), testSummary())
	require.NoError(t, err)

	assert.Contains(t, html, "Daily summary for Wednesday, June 12, 2024")
	assert.Contains(t, html, "Acme &lt;Kitchen&gt;")
	assert.Contains(t, html, "$1,320.00")
	assert.Contains(t, html, "Extras: Cheese, Size: Family")

	assert.Contains(t, text, "Acme <Kitchen> (1 orders)")
	assert.Contains(t, text, "40 x Lasagna (Extras: Cheese, Size: Family) @ $30.00 = $1,200.00")
	assert.Contains(t, text, "Lasagna: 40")
}

func TestSummaryRenderer_RenderEmail_NoOrders(t *testing.T) {
	r := newTestRenderer(t)

	html, text, err := r.RenderEmail(context.Background(), &entity.DailySummary{Date: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Contains(t, html, "No orders for this day.")
	assert.Contains(t, text, "No orders for this day.")
}

func TestSummaryRenderer_RenderPDF(t *testing.T) {
	pdf, err := newTestRenderer(t).RenderPDF(context.Background(), testSummary())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "x", nil)))
	assert.False(t, IsPermanent(domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "x", nil)))
	assert.False(t, IsPermanent(errors.New("boom")))

	assert.True(t, isPermanentError(errors.New("422 validation_error: invalid to address")))
	assert.False(t, isPermanentError(errors.New("429 rate limit exceeded")))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender()
	s.FailNext(errors.New("down"))

	_, err := s.Send(context.Background(), adapter.SendEmailInput{To: "a@example.com"})
	assert.Error(t, err)

	result, err := s.Send(context.Background(), adapter.SendEmailInput{To: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "local-1", result.ResendID)
	assert.Len(t, s.Sent(), 1)

	s.Reset()
	assert.Empty(t, s.Sent())
}

type fakeSummarySender struct {
	calls  []report.SendDailySummaryInput
	errs   []error
	onCall func()
}

func (f *fakeSummarySender) Execute(_ context.Context, input report.SendDailySummaryInput) (*report.SendDailySummaryOutput, error) {
	f.calls = append(f.calls, input)
	if f.onCall != nil {
		f.onCall()
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &report.SendDailySummaryOutput{Date: input.Date, Recipient: input.Recipient, MessageID: "m"}, nil
}

func newTestWorker(t *testing.T, sender summarySender, cfg WorkerConfig) *Worker {
	t.Helper()
	w, err := NewWorker(sender, cfg)
	require.NoError(t, err)
	return w
}

func TestNewWorker_InvalidSendTime(t *testing.T) {
	_, err := NewWorker(&fakeSummarySender{}, WorkerConfig{SendAt: "6am"})
	assert.Error(t, err)
}

func TestWorker_NextRun(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	w := newTestWorker(t, &fakeSummarySender{}, WorkerConfig{SendAt: "06:30", Location: loc})

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before send time runs today",
			now:  time.Date(2024, 6, 12, 5, 0, 0, 0, loc),
			want: time.Date(2024, 6, 12, 6, 30, 0, 0, loc),
		},
		{
			name: "at send time runs tomorrow",
			now:  time.Date(2024, 6, 12, 6, 30, 0, 0, loc),
			want: time.Date(2024, 6, 13, 6, 30, 0, 0, loc),
		},
		{
			name: "converts from utc",
			now:  time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC),
			want: time.Date(2024, 7, 1, 6, 30, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(w.nextRun(tt.now)), "got %s", w.nextRun(tt.now))
		})
	}
}

func TestWorker_SendFor(t *testing.T) {
	sender := &fakeSummarySender{
		errs: []error{
			nil,                    // ops@ first try
			errors.New("timeout"),  // kitchen@ first try
			nil,                    // kitchen@ retry
			domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "bad address", nil),
		},
	}
	w := newTestWorker(t, sender, WorkerConfig{
		Recipients: []string{"ops@example.com", "kitchen@example.com", "bad@example"},
		SendAt:     "06:00",
		AuthToken:  "service-token",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})

	sent := w.SendFor(context.Background(), time.Date(2024, 6, 12, 6, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, sent)
	require.Len(t, sender.calls, 4)
	for _, call := range sender.calls {
		assert.Equal(t, "2024-06-12", call.Date)
		assert.Equal(t, "service-token", call.AuthToken)
	}
	assert.Equal(t, "kitchen@example.com", sender.calls[2].Recipient)
	assert.Equal(t, "bad@example", sender.calls[3].Recipient)
}

func TestWorker_StartWithoutRecipientsReturns(t *testing.T) {
	w := newTestWorker(t, &fakeSummarySender{}, DefaultWorkerConfig())

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not return")
	}
}

func TestWorker_StartSendsPreviousDay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &fakeSummarySender{onCall: cancel}
	w := newTestWorker(t, sender, WorkerConfig{
		Recipients: []string{"ops@example.com"},
		SendAt:     "06:00",
		Location:   time.UTC,
	})
	w.now = func() time.Time { return time.Date(2024, 6, 12, 5, 59, 59, 990_000_000, time.UTC) }

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not run")
	}

	require.NotEmpty(t, sender.calls)
	assert.Equal(t, "2024-06-11", sender.calls[0].Date)
	assert.Equal(t, "ops@example.com", sender.calls[0].Recipient)
}
