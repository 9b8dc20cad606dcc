package api

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRowsResult() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"receipt_id", "store_name", "purchase_date", "product_name", "category", "quantity", "price"}).
		AddRow(1, "Albert Heijn", "2024-03-10", "Melk", "Boodschappen", 2, 1.29).
		AddRow(1, "Albert Heijn", "2024-03-10", "Allesreiniger", "Huishouden", 1, 3.49)
}

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `receipt_items`").
		WithArgs("Onbekend", 1, "2024-01-01", "2024-12-31").
		WillReturnRows(exportRowsResult())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bonnen_2024-01-01_2024-12-31.csv")

	body := w.Body.String()
	// UTF-8 BOM for Excel
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "Bon,Winkel,Datum,Product,Categorie,Aantal,Prijs")
	assert.Contains(t, body, "Melk,Boodschappen,2,1.29")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingRange(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=2024-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_ExportCSV_BadDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=01-01-2024&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `receipt_items`").
		WithArgs("Onbekend", 1, "2024-01-01", "2024-12-31").
		WillReturnRows(exportRowsResult())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bonnen_2024-01-01_2024-12-31.xlsx")
	// xlsx is a zip archive
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}
