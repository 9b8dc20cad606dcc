package api

import (
	"strconv"
	"strings"

	"kassabon/database"
	"kassabon/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler manages the category table. The canonical eight are
// seeded at startup; users can add their own on top.
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CategoryUpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// List returns all categories ordered by name.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} Response{data=[]models.Category}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Order("name").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Categorieën ophalen mislukt."))
		return
	}
	Success(c, list)
}

// Create adds a custom category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "category name"
// @Success 200 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "Naam mag niet leeg zijn.")
		return
	}

	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		BadRequest(c, "Deze categorie bestaat al.")
		return
	}

	cat := models.Category{Name: req.Name}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Categorie aanmaken mislukt."))
		return
	}
	SuccessWithMessage(c, "Categorie aangemaakt.", cat)
}

// Update renames a category.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "category ID"
// @Param request body CategoryUpdateRequest true "category name"
// @Success 200 {object} Response{data=models.Category}
// @Failure 404 {object} Response
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Ongeldig ID.")
		return
	}

	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "Categorie niet gevonden.")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "Naam mag niet leeg zijn.")
		return
	}

	var existing models.Category
	if err := database.DB.Where("name = ? AND id != ?", req.Name, cat.ID).First(&existing).Error; err == nil {
		BadRequest(c, "Deze categorie bestaat al.")
		return
	}

	if err := database.DB.Model(&cat).Update("name", req.Name).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Categorie bijwerken mislukt."))
		return
	}
	SuccessWithMessage(c, "Categorie bijgewerkt.", cat)
}

// Delete removes a category. Items pointing at it keep existing with their
// category set to NULL, which reads back as "Onbekend".
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Ongeldig ID.")
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "Categorie niet gevonden.")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Categorie verwijderen mislukt."))
		return
	}
	SuccessWithMessage(c, "Categorie verwijderd.", nil)
}
