package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/integration/persistence/model"
)

const defaultPassword = "Catering123"

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, t.theCurrentTimeIs)
	ctx.Given(`^reports read orders from the upstream order service$`, t.reportsReadFromUpstream)
	ctx.Given(`^the upstream order service responds with status (\d+)$`, t.theUpstreamRespondsWithStatus)
	ctx.Given(`^the upstream order service returns the orders:$`, t.theUpstreamReturnsTheOrders)

	ctx.Given(`^a user "([^"]*)" exists with role "([^"]*)"$`, t.aUserExistsWithRole)
	ctx.Given(`^I am logged in as "([^"]*)" with role "([^"]*)"$`, t.iAmLoggedInAsWithRole)
	ctx.Given(`^I am not logged in$`, t.iAmNotLoggedIn)

	ctx.Given(`^a product "([^"]*)" exists with SKU "([^"]*)" and price "([^"]*)"$`, t.aProductExists)
	ctx.Given(`^the product "([^"]*)" has an option group "([^"]*)" with options:$`, t.theProductHasAnOptionGroup)
	ctx.Given(`^the following orders exist:$`, t.theFollowingOrdersExist)
}

func (t *testContext) theAPIServerIsRunning() error {
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) reportsReadFromUpstream() error {
	if t.server != nil {
		return fmt.Errorf("the order source must be chosen before the first request")
	}
	t.remote = true
	return nil
}

func (t *testContext) theUpstreamRespondsWithStatus(status int) error {
	t.upstream.SetResponse(http.MethodGet, "/orders", status, map[string]any{"error": "upstream unavailable"})
	return nil
}

// theUpstreamReturnsTheOrders answers GET /orders with one order per table row:
// | number | client | status | created_at | total |
func (t *testContext) theUpstreamReturnsTheOrders(table *godog.Table) error {
	rows, err := t.orderRows(table)
	if err != nil {
		return err
	}

	orders := make([]map[string]any, 0, len(rows))
	for _, o := range rows {
		orders = append(orders, map[string]any{
			"id":              o.ID.String(),
			"order_number":    o.OrderNumber,
			"client_id":       o.ClientID.String(),
			"client_name":     o.ClientName,
			"delivery_date":   o.DeliveryDate.Format("2006-01-02"),
			"delivery_status": o.DeliveryStatus,
			"items":           []any{},
			"subtotal":        o.Subtotal.String(),
			"tax":             "0",
			"total":           o.Total.String(),
			"created_at":      o.CreatedAt.Format(time.RFC3339),
			"updated_at":      o.UpdatedAt.Format(time.RFC3339),
		})
	}
	t.upstream.SetResponse(http.MethodGet, "/orders", http.StatusOK, orders)
	return nil
}

func (t *testContext) aUserExistsWithRole(email, role string) error {
	_, err := t.ensureUser(email, entity.Role(role))
	return err
}

func (t *testContext) ensureUser(email string, role entity.Role) (uuid.UUID, error) {
	var existing model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&existing).Error; err == nil {
		return existing.ID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.MinCost)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test " + string(role),
		PasswordHash: string(hash),
		Role:         string(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// iAmLoggedInAsWithRole logs in through the API so the tokens are real.
func (t *testContext) iAmLoggedInAsWithRole(email, role string) error {
	id, err := t.ensureUser(email, entity.Role(role))
	if err != nil {
		return err
	}
	if err := t.ensureServer(); err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{"email": email, "password": defaultPassword})
	resp, err := t.client.Post(t.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %s failed with status %d", email, resp.StatusCode)
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	t.currentUserID = id
	t.accessToken = body.AccessToken
	t.refreshToken = body.RefreshToken
	return nil
}

func (t *testContext) iAmNotLoggedIn() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) aProductExists(name, sku, price string) error {
	basePrice, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", price, err)
	}

	now := time.Now().UTC()
	product := &model.ProductModel{
		ID:        uuid.New(),
		SKU:       sku,
		Name:      name,
		Category:  "catering",
		BasePrice: basePrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(product).Error; err != nil {
		return err
	}
	t.productIDs[name] = product.ID
	return nil
}

// theProductHasAnOptionGroup adds a required single-choice group:
// | name | multiplier |
func (t *testContext) theProductHasAnOptionGroup(productName, group string, table *godog.Table) error {
	id, ok := t.productIDs[productName]
	if !ok {
		return fmt.Errorf("unknown product %q", productName)
	}

	var product model.ProductModel
	if err := t.db.DbConn.First(&product, "id = ?", id).Error; err != nil {
		return err
	}

	g := entity.OptionGroup{Name: group, Required: true, MinSelect: 1, MaxSelect: 1}
	for _, row := range table.Rows[1:] {
		multiplier, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("invalid multiplier %q: %w", row.Cells[1].Value, err)
		}
		g.Options = append(g.Options, entity.ProductOption{Name: row.Cells[0].Value, PriceMultiplier: multiplier})
	}
	product.OptionGroups = append(product.OptionGroups, g)
	return t.db.DbConn.Save(&product).Error
}

// theFollowingOrdersExist stores one order per row:
// | number | client | status | created_at | total |
func (t *testContext) theFollowingOrdersExist(table *godog.Table) error {
	rows, err := t.orderRows(table)
	if err != nil {
		return err
	}
	for _, o := range rows {
		if err := t.db.DbConn.Create(o).Error; err != nil {
			return err
		}
		t.orderIDs[o.OrderNumber] = o.ID
	}
	return nil
}

func (t *testContext) orderRows(table *godog.Table) ([]*model.OrderModel, error) {
	if len(table.Rows) < 1 {
		return nil, fmt.Errorf("orders table needs a header row")
	}

	columns := map[string]int{}
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, required := range []string{"number", "client", "status", "created_at", "total"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("orders table is missing column %q", required)
		}
	}

	out := make([]*model.OrderModel, 0, len(table.Rows)-1)
	for i, row := range table.Rows[1:] {
		cell := func(name string) string { return row.Cells[columns[name]].Value }

		createdAt, err := time.Parse(time.RFC3339, cell("created_at"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid created_at: %w", i+1, err)
		}
		total, err := decimal.NewFromString(cell("total"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid total: %w", i+1, err)
		}

		clientID, err := t.clientID(cell("client"))
		if err != nil {
			return nil, err
		}

		out = append(out, &model.OrderModel{
			ID:             uuid.New(),
			OrderNumber:    cell("number"),
			ClientID:       clientID,
			ClientName:     cell("client"),
			DeliveryDate:   model.CivilDate(createdAt),
			DeliveryStatus: cell("status"),
			Subtotal:       total,
			Tax:            decimal.Zero,
			Total:          total,
			CreatedAt:      createdAt.UTC(),
			UpdatedAt:      createdAt.UTC(),
		})
	}
	return out, nil
}

// clientID maps a client label to an id. A label naming an existing user is that user.
func (t *testContext) clientID(label string) (uuid.UUID, error) {
	if id, ok := t.clientIDs[label]; ok {
		return id, nil
	}

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", label).First(&user).Error; err == nil {
		t.clientIDs[label] = user.ID
		return user.ID, nil
	}

	id := uuid.New()
	t.clientIDs[label] = id
	return id, nil
}
