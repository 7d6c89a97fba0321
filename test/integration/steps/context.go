// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/catering-ops/backend/config"
	"github.com/catering-ops/backend/internal/infra/dependency"
	"github.com/catering-ops/backend/internal/integration/email"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
	"github.com/catering-ops/backend/internal/integration/persistence/model"
	"github.com/catering-ops/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// tables lists the persisted models, children first.
var tables = []string{"order_items", "orders", "products", "users"}

// publishedEvent is an order event captured instead of going to NATS.
type publishedEvent struct {
	Subject string
	Payload any
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Subject: subject, Payload: payload})
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}

// testContext holds the state of one scenario.
type testContext struct {
	server   *httptest.Server
	client   *http.Client
	response *response

	db        *mock.Db
	redis     *redis.Client
	timeMock  *mock.Time
	upstream  *mock.ApiMock
	sender    *email.LogSender
	publisher *recordingPublisher

	// remote routes report reads to the upstream mock instead of the database.
	remote bool

	headers       map[string]string
	accessToken   string
	refreshToken  string
	currentUserID uuid.UUID
	clientIDs     map[string]uuid.UUID
	productIDs    map[string]uuid.UUID
	orderIDs      map[string]uuid.UUID
	lastID        string
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		if err := dto.RegisterValidators(); err != nil {
			panic(err)
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	t := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       mock.NewDb("catering_ops", models(), tables),
		redis:    mock.NewRedis(),
		upstream: mock.NewApiServer(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, t.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		t.after()
		return ctx, nil
	})

	registerSetupSteps(ctx, t)
	registerRequestSteps(ctx, t)
	registerResponseSteps(ctx, t)
	registerDatabaseSteps(ctx, t)
}

func models() map[string]any {
	return map[string]any{
		"users":       &model.UserModel{},
		"products":    &model.ProductModel{},
		"orders":      &model.OrderModel{},
		"order_items": &model.OrderItemModel{},
	}
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.clientIDs = make(map[string]uuid.UUID)
	t.productIDs = make(map[string]uuid.UUID)
	t.orderIDs = make(map[string]uuid.UUID)
	t.lastID = ""
	t.response = nil
	t.remote = false
	t.timeMock = mock.NewTime()
	t.sender = email.NewLogSender()
	t.publisher = &recordingPublisher{}
	t.upstream.Reset()

	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) after() {
	if t.server != nil {
		t.server.Close()
		t.server = nil
	}
	t.upstream.Close()
}

// ensureServer builds the application on first use, so setup steps can still change its wiring.
func (t *testContext) ensureServer() error {
	if t.server != nil {
		return nil
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Report.Timezone = "UTC"
	cfg.Email.Recipients = nil

	if t.remote {
		t.upstream.Start()
		cfg.OrderSource.Kind = config.OrderSourceRemote
		cfg.OrderSource.UpstreamURL = t.upstream.GetUrl()
	}

	injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
		DB:          t.db.DbConn,
		Redis:       t.redis,
		Publisher:   t.publisher,
		EmailSender: t.sender,
		Clock:       t.timeMock.Now,
	})
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return nil
}
