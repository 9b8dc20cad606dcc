package scan

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOCRClient_Recognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/OCR", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bon.jpg", header.Filename)

		w.Write([]byte(`{"success": true, "text": "ALBERT HEIJN\nMELK 1,29"}`))
	}))
	defer server.Close()

	text, err := NewOCRClient(server.URL).Recognize("bon.jpg", []byte{0xff, 0xd8, 0xff})

	require.NoError(t, err)
	assert.Equal(t, "ALBERT HEIJN\nMELK 1,29", text)
}

func TestOCRClient_EmptyTextIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "text": "  "}`))
	}))
	defer server.Close()

	_, err := NewOCRClient(server.URL).Recognize("bon.jpg", []byte("img"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no text extracted")
}

func TestOCRClient_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success": false, "error": "unreadable image"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := NewOCRClient(server.URL).Recognize("bon.jpg", []byte("img"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestOCRClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewOCRClient(server.URL).Recognize("bon.jpg", []byte("img"))

	assert.Error(t, err)
}
