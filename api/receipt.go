package api

import (
	"strconv"

	"kassabon/database"
	"kassabon/middleware"
	"kassabon/models"
	"kassabon/scan"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReceiptHandler persists receipt drafts. Writes run inside a transaction:
// either the receipt row and all of its items land, or nothing does.
type ReceiptHandler struct{}

func NewReceiptHandler() *ReceiptHandler {
	return &ReceiptHandler{}
}

// SaveReceiptRequest is a receipt draft plus the OCR text it came from.
type SaveReceiptRequest struct {
	scan.ReceiptData
	RawOCRText string `json:"raw_ocr_text"`
}

// ReceiptItemView is the denormalized item shape returned to clients:
// category is a name, never an ID, with "Onbekend" standing in for NULL.
type ReceiptItemView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// ReceiptView is the receipt shape returned to clients.
type ReceiptView struct {
	ID            uint              `json:"id"`
	StoreName     string            `json:"store_name"`
	PurchaseDate  string            `json:"purchase_date"`
	PurchaseTime  string            `json:"purchase_time,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	TotalAmount   float64           `json:"total_amount"`
	RawOCRText    string            `json:"raw_ocr_text,omitempty"`
	CreatedAt     string            `json:"created_at"`
	Items         []ReceiptItemView `json:"items"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validateDraft recomputes the total from the items and runs the business
// rules. The submitted total is never trusted.
func validateDraft(req *SaveReceiptRequest) scan.ValidationResult {
	total := scan.RecomputeTotal(req.Items)
	req.TotalPrice = &total
	return scan.Validate(&req.ReceiptData)
}

// resolveCategoryID looks up a category name. Empty names and the
// "Onbekend" sentinel deliberately resolve to NULL.
func resolveCategoryID(tx *gorm.DB, name *string) *uint {
	if name == nil || *name == "" || *name == models.CategoryUnknownLabel {
		return nil
	}
	var cat models.Category
	if err := tx.Where("name = ?", *name).First(&cat).Error; err != nil {
		return nil
	}
	return &cat.ID
}

// insertItems writes the draft items for a receipt, resolving category
// names to IDs one by one.
func insertItems(tx *gorm.DB, receiptID uint, items []scan.Item) error {
	for _, it := range items {
		quantity := 1.0
		if it.Quantity != nil {
			quantity = *it.Quantity
		}
		price := 0.0
		if it.Price != nil {
			price = *it.Price
		}
		row := models.ReceiptItem{
			ReceiptID:   receiptID,
			CategoryID:  resolveCategoryID(tx, it.Category),
			ProductName: strOrEmpty(it.Name),
			Quantity:    quantity,
			Price:       price,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadReceiptView re-reads a receipt with its items joined to category
// names. NULL categories come back as "Onbekend".
func loadReceiptView(db *gorm.DB, receipt *models.Receipt) (*ReceiptView, error) {
	var items []ReceiptItemView
	err := db.Table("receipt_items").
		Select("receipt_items.id, receipt_items.product_name AS name, COALESCE(categories.name, ?) AS category, receipt_items.quantity, receipt_items.price", models.CategoryUnknownLabel).
		Joins("LEFT JOIN categories ON categories.id = receipt_items.category_id").
		Where("receipt_items.receipt_id = ?", receipt.ID).
		Order("receipt_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ReceiptItemView{}
	}
	return &ReceiptView{
		ID:            receipt.ID,
		StoreName:     receipt.StoreName,
		PurchaseDate:  receipt.PurchaseDate,
		PurchaseTime:  receipt.PurchaseTime,
		PaymentMethod: receipt.PaymentMethod,
		TotalAmount:   receipt.TotalAmount,
		RawOCRText:    receipt.RawOCRText,
		CreatedAt:     receipt.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:         items,
	}, nil
}

// Create saves a validated receipt draft with its items.
// @Summary Create a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveReceiptRequest true "receipt draft"
// @Success 200 {object} Response{data=ReceiptView}
// @Failure 400 {object} Response
// @Router /api/v1/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SaveReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	result := validateDraft(&req)
	if !result.IsValid {
		c.JSON(400, Response{
			Code:    400,
			Message: "Bon is niet geldig.",
			Data:    result,
		})
		return
	}

	receipt := models.Receipt{
		UserID:        userID,
		StoreName:     strOrEmpty(req.StoreName),
		PurchaseDate:  strOrEmpty(req.Date),
		PurchaseTime:  strOrEmpty(req.Time),
		PaymentMethod: strOrEmpty(req.PaymentMethod),
		TotalAmount:   *req.TotalPrice,
		RawOCRText:    req.RawOCRText,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		return insertItems(tx, receipt.ID, req.Items)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon opslaan mislukt."))
		return
	}

	view, err := loadReceiptView(database.DB, &receipt)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon teruglezen mislukt."))
		return
	}
	SuccessWithMessage(c, "Bon opgeslagen.", view)
}

// Update replaces a receipt and all of its items.
// @Summary Update a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "receipt ID"
// @Param request body SaveReceiptRequest true "receipt draft"
// @Success 200 {object} Response{data=ReceiptView}
// @Failure 404 {object} Response
// @Router /api/v1/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Ongeldig ID.")
		return
	}

	var receipt models.Receipt
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id64), userID).First(&receipt).Error; err != nil {
		NotFound(c, "Bon niet gevonden.")
		return
	}

	var req SaveReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	result := validateDraft(&req)
	if !result.IsValid {
		c.JSON(400, Response{
			Code:    400,
			Message: "Bon is niet geldig.",
			Data:    result,
		})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"store_name":     strOrEmpty(req.StoreName),
			"purchase_date":  strOrEmpty(req.Date),
			"purchase_time":  strOrEmpty(req.Time),
			"payment_method": strOrEmpty(req.PaymentMethod),
			"total_amount":   *req.TotalPrice,
		}
		if req.RawOCRText != "" {
			updates["raw_ocr_text"] = req.RawOCRText
		}
		if err := tx.Model(&receipt).Updates(updates).Error; err != nil {
			return err
		}
		// Replace semantics: drop every old item, then reinsert the new set.
		if err := tx.Where("receipt_id = ?", receipt.ID).Delete(&models.ReceiptItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, receipt.ID, req.Items)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon bijwerken mislukt."))
		return
	}

	database.DB.First(&receipt, receipt.ID)
	view, err := loadReceiptView(database.DB, &receipt)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon teruglezen mislukt."))
		return
	}
	SuccessWithMessage(c, "Bon bijgewerkt.", view)
}

// Get returns one receipt with its items.
// @Summary Get a receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "receipt ID"
// @Success 200 {object} Response{data=ReceiptView}
// @Failure 404 {object} Response
// @Router /api/v1/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Ongeldig ID.")
		return
	}

	var receipt models.Receipt
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id64), userID).First(&receipt).Error; err != nil {
		NotFound(c, "Bon niet gevonden.")
		return
	}

	view, err := loadReceiptView(database.DB, &receipt)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon ophalen mislukt."))
		return
	}
	Success(c, view)
}

// List returns the user's receipts, newest first, items included.
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]ReceiptView}
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var receipts []models.Receipt
	if err := database.DB.Where("user_id = ?", userID).Order("purchase_date DESC, id DESC").Find(&receipts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Bonnen ophalen mislukt."))
		return
	}

	views := make([]ReceiptView, 0, len(receipts))
	for i := range receipts {
		view, err := loadReceiptView(database.DB, &receipts[i])
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "Bonnen ophalen mislukt."))
			return
		}
		views = append(views, *view)
	}
	Success(c, views)
}

// Delete removes a receipt; its items go with it through the cascade.
// @Summary Delete a receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "receipt ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Ongeldig ID.")
		return
	}

	var receipt models.Receipt
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id64), userID).First(&receipt).Error; err != nil {
		NotFound(c, "Bon niet gevonden.")
		return
	}

	if err := database.DB.Delete(&receipt).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Bon verwijderen mislukt."))
		return
	}
	SuccessWithMessage(c, "Bon verwijderd.", nil)
}

// CategoryTotal is one row of the per-category statistics.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Items    int64   `json:"items"`
}

// GetStatistics sums item spend per category for the current user.
// @Summary Per-category spending totals
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]CategoryTotal}
// @Router /api/v1/receipts/statistics [get]
func (h *ReceiptHandler) GetStatistics(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var totals []CategoryTotal
	err := database.DB.Table("receipt_items").
		Select("COALESCE(categories.name, ?) AS category, SUM(receipt_items.price * receipt_items.quantity) AS total, COUNT(receipt_items.id) AS items", models.CategoryUnknownLabel).
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN categories ON categories.id = receipt_items.category_id").
		Where("receipts.user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Statistieken ophalen mislukt."))
		return
	}
	if totals == nil {
		totals = []CategoryTotal{}
	}
	Success(c, totals)
}
