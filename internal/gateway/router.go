package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// ReadyFunc reports whether the API process can be reached.
type ReadyFunc func(ctx context.Context) error

func NewRouter(clients Clients, store sessions.Store, log *slog.Logger, ready ReadyFunc) *gin.Engine {
	h := NewHandler(clients, store, log)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), loadPrincipal(store))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "OK"}) })
	r.GET("/readyz", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				log.WarnContext(c.Request.Context(), "not ready", slog.Any("err", err))
				writeError(c, http.StatusServiceUnavailable, "UNAVAILABLE", "api unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("", requireAdmin(), h.CreateProduct)
	products.PUT("/:id", requireAdmin(), h.UpdateProduct)
	products.DELETE("/:id", requireAdmin(), h.DeleteProduct)

	cart := api.Group("/cart", requireUser())
	cart.GET("", h.GetCart)
	cart.POST("", h.AddCartItem)
	cart.PATCH("/:itemId", h.UpdateCartItem)
	cart.DELETE("/:itemId", h.RemoveCartItem)

	checkout := api.Group("/checkout", requireUser())
	checkout.GET("/quote", h.Quote)
	checkout.POST("", h.PlaceOrder)

	orders := api.Group("/orders", requireUser())
	orders.GET("", h.ListMyOrders)
	orders.GET("/:id", h.GetOrder)

	admin := api.Group("/admin", requireAdmin())
	admin.GET("/orders", h.ListAllOrders)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.GET("/stats", h.Stats)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/session", h.Session)

	return r
}
