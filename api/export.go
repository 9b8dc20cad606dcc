package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"kassabon/database"
	"kassabon/middleware"
	"kassabon/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler exports receipt items as CSV or Excel.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRow is one denormalized line: receipt scalars plus one item.
type exportRow struct {
	ReceiptID    uint
	StoreName    string
	PurchaseDate string
	ProductName  string
	Category     string
	Quantity     float64
	Price        float64
}

// parseExportRange validates the start_date/end_date query pair.
func parseExportRange(c *gin.Context) (string, string, bool) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if startDate == "" || endDate == "" {
		BadRequest(c, "Geef een start- en einddatum op.")
		return "", "", false
	}
	if _, err := time.ParseInLocation("2006-01-02", startDate, time.Local); err != nil {
		BadRequest(c, "Startdatum moet het formaat 2006-01-02 hebben.")
		return "", "", false
	}
	if _, err := time.ParseInLocation("2006-01-02", endDate, time.Local); err != nil {
		BadRequest(c, "Einddatum moet het formaat 2006-01-02 hebben.")
		return "", "", false
	}
	return startDate, endDate, true
}

func (h *ExportHandler) queryRows(userID uint, startDate, endDate string) ([]exportRow, error) {
	var rows []exportRow
	err := database.DB.Table("receipt_items").
		Select("receipts.id AS receipt_id, receipts.store_name, receipts.purchase_date, receipt_items.product_name, COALESCE(categories.name, ?) AS category, receipt_items.quantity, receipt_items.price", models.CategoryUnknownLabel).
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN categories ON categories.id = receipt_items.category_id").
		Where("receipts.user_id = ? AND receipts.purchase_date >= ? AND receipts.purchase_date <= ?", userID, startDate, endDate).
		Order("receipts.purchase_date DESC, receipts.id DESC, receipt_items.id").
		Scan(&rows).Error
	return rows, err
}

// ExportCSV writes the selected range as CSV.
// @Summary Export receipt items as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "start date (2024-01-01)"
// @Param end_date query string true "end date (2024-12-31)"
// @Success 200 {file} file
// @Failure 400 {object} Response
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	startDate, endDate, ok := parseExportRange(c)
	if !ok {
		return
	}

	rows, err := h.queryRows(userID, startDate, endDate)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Exporteren mislukt."))
		return
	}

	buf := new(bytes.Buffer)
	// BOM keeps Excel happy with UTF-8 content.
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"Bon", "Winkel", "Datum", "Product", "Categorie", "Aantal", "Prijs"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "CSV genereren mislukt.")
		return
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ReceiptID),
			row.StoreName,
			row.PurchaseDate,
			row.ProductName,
			row.Category,
			fmt.Sprintf("%g", row.Quantity),
			fmt.Sprintf("%.2f", row.Price),
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "CSV genereren mislukt.")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "CSV genereren mislukt.")
		return
	}

	filename := fmt.Sprintf("bonnen_%s_%s.csv", startDate, endDate)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel writes the selected range as a styled xlsx workbook.
// @Summary Export receipt items as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "start date (2024-01-01)"
// @Param end_date query string true "end date (2024-12-31)"
// @Success 200 {file} file
// @Failure 400 {object} Response
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	startDate, endDate, ok := parseExportRange(c)
	if !ok {
		return
	}

	rows, err := h.queryRows(userID, startDate, endDate)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Exporteren mislukt."))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bonnen"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 22)
	f.SetColWidth(sheetName, "F", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 12)

	headers := []string{"Bon", "Winkel", "Datum", "Product", "Categorie", "Aantal", "Prijs"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalAmount float64
	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.ReceiptID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.StoreName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), row.PurchaseDate)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.ProductName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), row.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", r), row.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", r), row.Price)

		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("G%d", r), dataStyle)
		totalAmount += row.Price * row.Quantity
	}

	summaryRow := len(rows) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Totaal")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", summaryRow), totalAmount)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("bonnen_%s_%s.xlsx", startDate, endDate)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Excel genereren mislukt.")
		return
	}
}
