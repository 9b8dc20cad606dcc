package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// OCRClient talks to the OCR microservice: image bytes in, raw text out.
// The service is a black box; decoding, rotation and language handling all
// live on its side of the wire.
type OCRClient struct {
	baseURL string
	client  *http.Client
}

// NewOCRClient creates a client for the OCR service at baseURL.
func NewOCRClient(baseURL string) *OCRClient {
	return &OCRClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type ocrResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error"`
}

// Recognize uploads the image and returns the recognized text. An empty
// result counts as a failure: without text there is nothing to extract.
func (o *OCRClient) Recognize(filename string, image []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}

	resp, err := o.client.Post(o.baseURL+"/OCR", writer.FormDataContentType(), body)
	if err != nil {
		return "", fmt.Errorf("calling OCR service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(b))
	}

	var result ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding OCR response: %w", err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return "", fmt.Errorf("no text extracted from OCR")
	}

	return result.Text, nil
}
