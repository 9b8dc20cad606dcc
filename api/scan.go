package api

import (
	"io"

	"kassabon/config"
	"kassabon/scan"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps receipt photo uploads at 10 MB.
const maxImageSize = 10 << 20

type ocrClient interface {
	Recognize(filename string, image []byte) (string, error)
}

type receiptExtractor interface {
	Extract(ocrText string) (*scan.ReceiptData, error)
}

// ScanHandler runs the ingestion pipeline: photo → OCR → model extraction →
// filter/category/validation, returning a draft for the client to review.
// Nothing is persisted here; saving is a separate, validated step.
type ScanHandler struct {
	ocr       ocrClient
	extractor receiptExtractor
}

// NewScanHandler wires the pipeline against the configured OCR and Ollama
// endpoints.
func NewScanHandler(cfg *config.Config) *ScanHandler {
	return &ScanHandler{
		ocr:       scan.NewOCRClient(cfg.OCR.BaseURL),
		extractor: scan.NewExtractor(cfg.Ollama.BaseURL, cfg.Ollama.Model),
	}
}

// ScanResponse is the scan result. Receipt is nil when the model produced
// unusable output; the client then falls back to the raw OCR text.
type ScanResponse struct {
	Receipt    *scan.ReceiptData      `json:"receipt"`
	RawOCRText string                 `json:"raw_ocr_text"`
	Validation *scan.ValidationResult `json:"validation,omitempty"`
}

// Scan accepts a multipart receipt photo and returns an extracted draft.
// @Summary Scan a receipt photo
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "receipt photo"
// @Success 200 {object} Response{data=ScanResponse}
// @Failure 400 {object} Response
// @Failure 502 {object} Response
// @Router /api/v1/receipts/scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		BadRequest(c, "Geen afbeelding ontvangen.")
		return
	}
	if fileHeader.Size > maxImageSize {
		BadRequest(c, "Afbeelding is te groot (max 10 MB).")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Afbeelding lezen mislukt."))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Afbeelding lezen mislukt."))
		return
	}

	ocrText, err := h.ocr.Recognize(fileHeader.Filename, image)
	if err != nil {
		BadGateway(c, SafeErrorMessage(err, "Tekstherkenning mislukt. Probeer het later opnieuw."))
		return
	}

	receipt, err := h.extractor.Extract(ocrText)
	if err != nil {
		BadGateway(c, SafeErrorMessage(err, "Bon verwerken mislukt. Probeer het later opnieuw."))
		return
	}

	resp := ScanResponse{
		Receipt:    receipt,
		RawOCRText: ocrText,
	}
	if receipt == nil {
		// Model output was unusable: hand the raw text to the client so the
		// user can fill in the receipt manually.
		SuccessWithMessage(c, "Bon kon niet automatisch worden gelezen.", resp)
		return
	}

	total := scan.RecomputeTotal(receipt.Items)
	receipt.TotalPrice = &total
	validation := scan.Validate(receipt)
	resp.Validation = &validation

	Success(c, resp)
}

// ValidateResponse is the validation verdict plus the authoritative total.
type ValidateResponse struct {
	scan.ValidationResult
	ComputedTotal float64 `json:"computed_total"`
}

// Validate checks an edited draft without saving it. Clients call this
// after every edit; the returned computed_total always overrides whatever
// total the client sent.
// @Summary Validate a receipt draft
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body scan.ReceiptData true "receipt draft"
// @Success 200 {object} Response{data=ValidateResponse}
// @Failure 400 {object} Response
// @Router /api/v1/receipts/validate [post]
func (h *ScanHandler) Validate(c *gin.Context) {
	var draft scan.ReceiptData
	if err := c.ShouldBindJSON(&draft); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	total := scan.RecomputeTotal(draft.Items)
	draft.TotalPrice = &total

	Success(c, ValidateResponse{
		ValidationResult: scan.Validate(&draft),
		ComputedTotal:    total,
	})
}
