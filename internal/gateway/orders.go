package gateway

import (
	"net/http"
	"strconv"

	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"github.com/gin-gonic/gin"
)

// ListMyOrders handles GET /api/orders
func (h *Handler) ListMyOrders(c *gin.Context) {
	resp, err := h.clients.Order.ListMyOrders(c.Request.Context(), &rpc.Empty{})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	resp, err := h.clients.Order.GetOrder(c.Request.Context(), &orderv1.GetOrderRequest{ID: c.Param("id")})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAllOrders handles GET /api/admin/orders
func (h *Handler) ListAllOrders(c *gin.Context) {
	req := &orderv1.ListAllOrdersRequest{Status: c.Query("status")}
	for name, dst := range map[string]*int{"limit": &req.Limit, "offset": &req.Offset} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	resp, err := h.clients.Order.ListAllOrders(c.Request.Context(), req)
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type statusBody struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "status is required")
		return
	}
	resp, err := h.clients.Order.UpdateStatus(c.Request.Context(), &orderv1.UpdateStatusRequest{
		ID:     c.Param("id"),
		Status: body.Status,
	})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats handles GET /api/admin/stats
func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.clients.Order.Stats(c.Request.Context(), &rpc.Empty{})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
