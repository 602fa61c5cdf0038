package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/server/http/dto"
)

// AdminCatalogHandler manages back-office product and category endpoints.
type AdminCatalogHandler struct {
	facade AdminCatalogFacade
}

// NewAdminCatalogHandler constructs AdminCatalogHandler.
func NewAdminCatalogHandler(facade AdminCatalogFacade) *AdminCatalogHandler {
	return &AdminCatalogHandler{facade: facade}
}

// ListProducts handles GET /api/admin/products. Inactive products are
// included.
func (h *AdminCatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.facade.AllProducts(c.Request.Context(), productFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/admin/products/:id.
func (h *AdminCatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminCatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), productFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminCatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := productFromRequest(req)
	product.ID = id
	if err := h.facade.UpdateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminCatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetProductActive handles PUT /api/admin/products/:id/active.
func (h *AdminCatalogHandler) SetProductActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetProductActive(c.Request.Context(), id, req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories handles GET /api/admin/categories.
func (h *AdminCatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}
	c.JSON(http.StatusOK, response)
}

// CreateCategory handles POST /api/admin/categories.
func (h *AdminCatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateCategory(c.Request.Context(), &model.Category{Name: req.Name})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: created.ID, Name: created.Name, Slug: created.Slug})
}

// UpdateCategory handles PUT /api/admin/categories/:id.
func (h *AdminCatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.UpdateCategory(c.Request.Context(), &model.Category{ID: id, Name: req.Name}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
func (h *AdminCatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func productFromRequest(req dto.ProductRequest) *model.Product {
	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		WeightGrams: req.WeightGrams,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}
}
