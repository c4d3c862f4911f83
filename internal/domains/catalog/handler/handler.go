package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goiashop-bff/internal/domains/catalog"
	"goiashop-bff/internal/domains/catalog/service"
	"goiashop-bff/internal/shared/response"
)

// =====================================================
// CATALOG HANDLER
// =====================================================

type CatalogHandler struct {
	catalog *service.Catalog
}

func NewCatalogHandler(catalog *service.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List godoc: GET /backoffice/products
func (h *CatalogHandler) List(c *gin.Context) {
	var params catalog.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.catalog.List(c.Request.Context(), params)
	if err != nil {
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// Get godoc: GET /backoffice/products/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}
