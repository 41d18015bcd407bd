package gateway

import (
	"net/http"
	"strconv"

	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	"github.com/gin-gonic/gin"
)

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	req := &catalogv1.ListProductsRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Cursor:   c.Query("cursor"),
	}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "featured must be a boolean")
			return
		}
		req.Featured = featured
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.clients.Catalog.ListProducts(c.Request.Context(), req)
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct handles GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	resp, err := h.clients.Catalog.GetProduct(c.Request.Context(), &catalogv1.GetProductRequest{ID: c.Param("id")})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateProduct handles POST /api/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var in catalogv1.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}
	resp, err := h.clients.Catalog.CreateProduct(c.Request.Context(), &catalogv1.CreateProductRequest{Input: in})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateProduct handles PUT /api/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var in catalogv1.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}
	resp, err := h.clients.Catalog.UpdateProduct(c.Request.Context(), &catalogv1.UpdateProductRequest{ID: c.Param("id"), Input: in})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if _, err := h.clients.Catalog.DeleteProduct(c.Request.Context(), &catalogv1.DeleteProductRequest{ID: c.Param("id")}); err != nil {
		writeGRPCError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
