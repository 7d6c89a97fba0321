package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"gorm.io/gorm"
)

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, t.theResponseHeaderShouldContain)
	ctx.Then(`^the response body should contain "([^"]*)"$`, t.theResponseBodyShouldContain)
	ctx.Then(`^the upstream order service should have received (\d+) requests?$`, t.theUpstreamShouldHaveReceived)
	ctx.Then(`^the upstream request should carry the caller's token$`, t.theUpstreamRequestShouldCarryToken)
	ctx.Then(`^(\d+) summary emails? should have been sent to "([^"]*)"$`, t.summaryEmailsShouldHaveBeenSent)
	ctx.Then(`^the event "([^"]*)" should have been published$`, t.theEventShouldHaveBeenPublished)
}

func registerDatabaseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders fills {{access_token}}, {{refresh_token}}, {{last_id}}, {{user_id}}
// {{product:NAME}}, {{order:NUMBER}} and {{client:LABEL}} in paths and bodies.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	for name, id := range t.productIDs {
		content = strings.ReplaceAll(content, "{{product:"+name+"}}", id.String())
	}
	for number, id := range t.orderIDs {
		content = strings.ReplaceAll(content, "{{order:"+number+"}}", id.String())
	}
	for label, id := range t.clientIDs {
		content = strings.ReplaceAll(content, "{{client:"+label+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if err := t.ensureServer(); err != nil {
		return err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, headers: resp.Header, raw: raw}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = body

	if m, ok := body.(map[string]any); ok {
		if id, ok := m["id"].(string); ok {
			t.lastID = id
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	return value, nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("body does not contain '%s': %s", expected, t.response.raw)
	}
	return nil
}

func (t *testContext) theUpstreamShouldHaveReceived(count int) error {
	if got := len(t.upstream.Requests(http.MethodGet, "/orders")); got != count {
		return fmt.Errorf("expected %d upstream requests, got %d", count, got)
	}
	return nil
}

func (t *testContext) theUpstreamRequestShouldCarryToken() error {
	requests := t.upstream.Requests(http.MethodGet, "/orders")
	if len(requests) == 0 {
		return errors.New("the upstream order service received no request")
	}
	want := "Bearer " + t.accessToken
	for _, r := range requests {
		if r.Headers["Authorization"] != want {
			return fmt.Errorf("upstream request carried %q", r.Headers["Authorization"])
		}
	}
	return nil
}

func (t *testContext) summaryEmailsShouldHaveBeenSent(count int, recipient string) error {
	sent := 0
	for _, e := range t.sender.Sent() {
		if e.To == recipient {
			sent++
			if len(e.Attachments) == 0 {
				return fmt.Errorf("summary email to %s has no attachment", recipient)
			}
		}
	}
	if sent != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, recipient, sent)
	}
	return nil
}

func (t *testContext) theEventShouldHaveBeenPublished(subject string) error {
	subjects := t.publisher.subjects()
	if !slices.Contains(subjects, subject) {
		return fmt.Errorf("event %q not published, got %v", subject, subjects)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a dot separated path such as "daily_orders.0.count".
func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
