package gateway

import (
	"net/http"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"github.com/gin-gonic/gin"
)

type addItemBody struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemBody struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	resp, err := h.clients.Cart.GetCart(c.Request.Context(), &rpc.Empty{})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddCartItem handles POST /api/cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var body addItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "productId is required")
		return
	}
	resp, err := h.clients.Cart.AddItem(c.Request.Context(), &cartv1.AddItemRequest{
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCartItem handles PATCH /api/cart/:itemId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var body updateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "quantity is required")
		return
	}
	resp, err := h.clients.Cart.UpdateItem(c.Request.Context(), &cartv1.UpdateItemRequest{
		ItemID:   c.Param("itemId"),
		Quantity: *body.Quantity,
	})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveCartItem handles DELETE /api/cart/:itemId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	resp, err := h.clients.Cart.RemoveItem(c.Request.Context(), &cartv1.RemoveItemRequest{ItemID: c.Param("itemId")})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
