package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"kassabon/models"
)

// Extractor turns raw OCR text into a structured receipt draft by prompting
// a local Ollama model and sanitizing whatever comes back. The model output
// is untrusted: every field passes through an explicit coerce-or-default
// step before it reaches a caller.
type Extractor struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewExtractor creates an extractor for the given Ollama endpoint and model.
func NewExtractor(baseURL, model string) *Extractor {
	return &Extractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// rawReceipt mirrors the JSON shape the model is asked to produce, with
// every scalar as `any` so that wrongly typed values coerce to nil instead
// of failing the whole parse. Items stays raw: a malformed items array
// degrades to an empty list, not a hard failure. The store_type and
// primary_category fields are internal-only steering for categorization and
// never surface in the returned draft.
type rawReceipt struct {
	StoreName       any             `json:"store_name"`
	Date            any             `json:"date"`
	Time            any             `json:"time"`
	TotalPrice      any             `json:"total_price"`
	PaymentMethod   any             `json:"payment_method"`
	Items           json.RawMessage `json:"items"`
	StoreType       any             `json:"store_type"`
	PrimaryCategory any             `json:"primary_category"`
}

type rawItem struct {
	Name     any `json:"name"`
	Category any `json:"category"`
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
}

// Extract asks the model for a structured reading of the OCR text.
// It returns an error when the backend is unreachable or answers non-OK
// (the pipeline aborts), and (nil, nil) when the backend answered but its
// output was not the requested JSON document (the caller falls back to
// showing the raw OCR text). No repair of malformed output is attempted.
func (e *Extractor) Extract(ocrText string) (*ReceiptData, error) {
	body, err := json.Marshal(generateRequest{
		Model:  e.model,
		Prompt: buildPrompt(ocrText),
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("building extraction request: %w", err)
	}

	resp, err := e.client.Post(e.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(b))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}

	if strings.TrimSpace(gen.Response) == "" {
		log.Println("extraction: empty response from model")
		return nil, nil
	}

	return parseModelResponse(gen.Response), nil
}

// parseModelResponse parses and sanitizes the model's free-text answer.
// Returns nil when the text is not a JSON object.
func parseModelResponse(text string) *ReceiptData {
	var raw rawReceipt
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		log.Printf("extraction: model response is not valid JSON: %v, raw response: %s", err, text)
		return nil
	}

	var rawItems []rawItem
	if len(raw.Items) > 0 {
		// A malformed items array is treated as empty, not as a failure.
		_ = json.Unmarshal(raw.Items, &rawItems)
	}

	items := make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		items = append(items, Item{
			Name:     asString(ri.Name),
			Category: asString(ri.Category),
			Quantity: asNumber(ri.Quantity),
			Price:    asNumber(ri.Price),
		})
	}
	items = FilterItems(items)

	storeType := StoreTypeUnknown
	if s := asString(raw.StoreType); s != nil && *s != "" {
		storeType = *s
	}
	mixed := IsMixedTypeStore(storeType)

	// The model's own primary_category wins when it names a canonical
	// category; otherwise fall back to the fixed store-type table.
	primary := ValidateCategory(asString(raw.PrimaryCategory))
	if primary == models.CategoryOther {
		primary = ResolvePrimaryCategory(storeType)
	}

	for i := range items {
		var category string
		if mixed {
			// Mixed-type stores (supermarkets) keep the model's per-item
			// suggestion, sanitized against the canonical set.
			category = ValidateCategory(items[i].Category)
		} else {
			// Single-type stores force the primary category on every item,
			// whatever the model suggested per item.
			category = primary
		}
		items[i].Category = &category
	}

	return &ReceiptData{
		StoreName:     asString(raw.StoreName),
		Date:          asString(raw.Date),
		Time:          asString(raw.Time),
		TotalPrice:    asNumber(raw.TotalPrice),
		PaymentMethod: asString(raw.PaymentMethod),
		Items:         items,
	}
}

// asString coerces a JSON value to string-or-nil. Non-strings and empty
// strings become nil, silently.
func asString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// asNumber coerces a JSON value to number-or-nil. Non-numeric values are
// rejected silently.
func asNumber(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
