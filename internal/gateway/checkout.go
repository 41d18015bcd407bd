package gateway

import (
	"net/http"

	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"github.com/gin-gonic/gin"
)

// Quote handles GET /api/checkout/quote
func (h *Handler) Quote(c *gin.Context) {
	resp, err := h.clients.Checkout.Quote(c.Request.Context(), &rpc.Empty{})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlaceOrder handles POST /api/checkout
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req checkoutv1.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}
	resp, err := h.clients.Checkout.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
