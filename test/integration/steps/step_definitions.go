package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/integration/persistence/model"
)

func (t *testContext) aCardExistsWithCurrency(name, currency string) error {
	cardID := uuid.New()
	now := time.Now().UTC()

	cardModel := &model.CardModel{
		ID:        cardID,
		Name:      name,
		Currency:  currency,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.db.DbConn.Create(cardModel).Error; err != nil {
		return err
	}

	t.cardIDs[name] = cardID
	t.lastCardID = cardID
	return nil
}

func (t *testContext) aRecordedIncomeForCardOn(amount, cardName, date string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card %q has not been created", cardName)
	}
	return t.recordTransaction(map[string]any{
		"type":             "income",
		"amount":           jsonNumber(amount),
		"transaction_date": date,
		"asset":            "cash",
		"category":         "salary",
		"to_cards_id":      cardID.String(),
	})
}

func (t *testContext) aRecordedExpenseForCardOn(amount, cardName, date string) error {
	return t.aRecordedExpenseInCategoryForCardOn(amount, "food_drinks", cardName, date)
}

func (t *testContext) aRecordedExpenseInCategoryForCardOn(amount, category, cardName, date string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card %q has not been created", cardName)
	}
	return t.recordTransaction(map[string]any{
		"type":             "expense",
		"amount":           jsonNumber(amount),
		"transaction_date": date,
		"asset":            "cash",
		"category":         category,
		"from_cards_id":    cardID.String(),
	})
}

func (t *testContext) aRecordedConvertFromCardToCardOn(amount, fromName, toName, date string) error {
	fromID, ok := t.cardIDs[fromName]
	if !ok {
		return fmt.Errorf("card %q has not been created", fromName)
	}
	toID, ok := t.cardIDs[toName]
	if !ok {
		return fmt.Errorf("card %q has not been created", toName)
	}
	return t.recordTransaction(map[string]any{
		"type":             "convert",
		"amount":           jsonNumber(amount),
		"transaction_date": date,
		"asset":            "transfer",
		"from_cards_id":    fromID.String(),
		"to_cards_id":      toID.String(),
	})
}

// recordTransaction seeds the ledger through the API so balances and
// sequence numbers move exactly as they would in production.
func (t *testContext) recordTransaction(body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to seed transaction: status %d, body %v", t.response.status, t.response.body)
	}
	return nil
}

func jsonNumber(amount string) float64 {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid amount %q: %v", amount, err))
	}
	return value
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{card_id}}", t.lastCardID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.lastBudgetID.String())

	for name, id := range t.cardIDs {
		content = strings.ReplaceAll(content, "{{card:"+name+"}}", id.String())
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)

	return nil
}

// captureIDs remembers the id of whatever the API just returned, keyed by
// the response shape, so later steps can reference it through placeholders.
func (t *testContext) captureIDs(body map[string]any) {
	idStr, ok := body["id"].(string)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return
	}

	switch {
	case hasKey(body, "type") && hasKey(body, "transaction_date"):
		t.lastTransactionID = id
	case hasKey(body, "month"):
		t.lastBudgetID = id
	case hasKey(body, "currency"):
		t.lastCardID = id
		if name, ok := body["name"].(string); ok {
			t.cardIDs[name] = id
		}
	}
}

func hasKey(body map[string]any, key string) bool {
	_, ok := body[key]
	return ok
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theCardShouldHaveBalance(cardName, expected string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card %q has not been created", cardName)
	}

	expectedBalance, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid expected balance %q: %w", expected, err)
	}

	var cardModel model.CardModel
	if err := t.db.DbConn.Where("id = ?", cardID).First(&cardModel).Error; err != nil {
		return fmt.Errorf("card %q not found in db: %w", cardName, err)
	}

	if !cardModel.Balance.Equal(expectedBalance) {
		return fmt.Errorf("card %q expected balance %s, got %s", cardName, expectedBalance, cardModel.Balance)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
		} else {
			m, ok := field.(map[string]any)
			if !ok {
				return nil
			}
			field = m[currentField]
		}
	}

	return field
}
