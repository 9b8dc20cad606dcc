package scan

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassabon/models"
)

// fakeOllama returns a server answering /api/generate with the given model
// response text wrapped in the generate envelope.
func fakeOllama(t *testing.T, modelResponse string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.NotEmpty(t, req.Model)
		assert.NotEmpty(t, req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{Response: modelResponse})
	}))
}

func TestExtract_SupermarketReceipt(t *testing.T) {
	modelOutput := `{
		"store_name": "Albert Heijn",
		"date": "2024-03-10",
		"time": "14:32",
		"total_price": 8.93,
		"payment_method": "Bancontact",
		"store_type": "supermarket",
		"primary_category": "Boodschappen",
		"items": [
			{"name": "Melk halfvol", "category": "Boodschappen", "quantity": 2, "price": 1.29},
			{"name": "Allesreiniger", "category": "Huishouden", "quantity": 1, "price": 3.49},
			{"name": "TOTAAL", "category": "Boodschappen", "quantity": 1, "price": 8.93},
			{"name": "Paracetamol", "category": "Gezondheid & Zorg", "quantity": 1, "price": 2.86}
		]
	}`
	server := fakeOllama(t, modelOutput)
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("ALBERT HEIJN\nMELK HALFVOL 1,29 x2\n...")

	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "Albert Heijn", *data.StoreName)
	assert.Equal(t, "2024-03-10", *data.Date)
	assert.Equal(t, 8.93, *data.TotalPrice)

	// TOTAAL is filtered out; the supermarket keeps per-item categories.
	require.Len(t, data.Items, 3)
	assert.Equal(t, "Melk halfvol", *data.Items[0].Name)
	assert.Equal(t, models.CategoryGroceries, *data.Items[0].Category)
	assert.Equal(t, models.CategoryHousehold, *data.Items[1].Category)
	assert.Equal(t, models.CategoryHealth, *data.Items[2].Category)
}

func TestExtract_SingleTypeStoreForcesPrimaryCategory(t *testing.T) {
	modelOutput := `{
		"store_name": "H&M",
		"date": "2024-03-10",
		"total_price": 39.98,
		"payment_method": "Visa",
		"store_type": "clothing",
		"primary_category": "Winkels & Kleding",
		"items": [
			{"name": "T-shirt basic", "category": "Boodschappen", "quantity": 2, "price": 9.99},
			{"name": "Spijkerbroek", "category": "Vrije Tijd & Uitgaan", "quantity": 1, "price": 19.99}
		]
	}`
	server := fakeOllama(t, modelOutput)
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("H&M\n...")

	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Items, 2)
	assert.Equal(t, models.CategoryRetail, *data.Items[0].Category)
	assert.Equal(t, models.CategoryRetail, *data.Items[1].Category)
}

func TestExtract_InvalidPrimaryCategoryFallsBackToStoreType(t *testing.T) {
	modelOutput := `{
		"store_name": "Shell",
		"date": "2024-03-10",
		"total_price": 62.40,
		"payment_method": "Credit Card",
		"store_type": "petrol_station",
		"primary_category": "Fuel",
		"items": [
			{"name": "Euro 95", "category": "Fuel", "quantity": 1, "price": 62.40}
		]
	}`
	server := fakeOllama(t, modelOutput)
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("SHELL\n...")

	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, models.CategoryTransport, *data.Items[0].Category)
}

func TestExtract_ProseResponseReturnsNilNil(t *testing.T) {
	server := fakeOllama(t, "Sure! Here is the receipt you asked about: the store seems to be Albert Heijn.")
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("ALBERT HEIJN\n...")

	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestExtract_EmptyResponseReturnsNilNil(t *testing.T) {
	server := fakeOllama(t, "")
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("ALBERT HEIJN\n...")

	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestExtract_UpstreamErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("ALBERT HEIJN\n...")

	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestExtract_UnreachableBackendAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	data, err := NewExtractor(server.URL, "llama3.2").Extract("ALBERT HEIJN\n...")

	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestParseModelResponse_WrongTypesCoerceToNil(t *testing.T) {
	data := parseModelResponse(`{
		"store_name": 42,
		"date": true,
		"time": null,
		"total_price": "12,50",
		"payment_method": "Cash",
		"store_type": "unknown",
		"items": [
			{"name": "Koffie", "category": 7, "quantity": "twee", "price": 2.50}
		]
	}`)

	require.NotNil(t, data)
	assert.Nil(t, data.StoreName)
	assert.Nil(t, data.Date)
	assert.Nil(t, data.Time)
	assert.Nil(t, data.TotalPrice)
	assert.Equal(t, "Cash", *data.PaymentMethod)

	require.Len(t, data.Items, 1)
	assert.Nil(t, data.Items[0].Quantity)
	assert.Equal(t, 2.50, *data.Items[0].Price)
	// Unknown store: the per-item suggestion was not canonical, so Overig.
	assert.Equal(t, models.CategoryOther, *data.Items[0].Category)
}

func TestParseModelResponse_MalformedItemsArrayDegradesToEmpty(t *testing.T) {
	data := parseModelResponse(`{
		"store_name": "Kiosk",
		"items": "n/a"
	}`)

	require.NotNil(t, data)
	assert.Empty(t, data.Items)
}

func TestParseModelResponse_FencedJSONIsRejected(t *testing.T) {
	// No repair is attempted, markdown fences around otherwise valid JSON
	// still fail the parse.
	data := parseModelResponse("```json\n{\"store_name\": \"Aldi\"}\n```")

	assert.Nil(t, data)
}
