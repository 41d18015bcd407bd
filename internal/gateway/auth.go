package gateway

import (
	"log/slog"
	"net/http"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/gin-gonic/gin"
)

type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *accountv1.User `json:"user,omitempty"`
}

// Register handles POST /api/auth/register and logs the new user in.
func (h *Handler) Register(c *gin.Context) {
	var req accountv1.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}
	resp, err := h.clients.Account.Register(c.Request.Context(), &req)
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	h.startSession(c, http.StatusCreated, resp.User)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req accountv1.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}
	resp, err := h.clients.Account.Authenticate(c.Request.Context(), &req)
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	h.startSession(c, http.StatusOK, resp.User)
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := clearSession(c, h.sessions); err != nil {
		h.log.WarnContext(c.Request.Context(), "clear session", slog.Any("err", err))
	}
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/auth/session
func (h *Handler) Session(c *gin.Context) {
	p, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, SessionResponse{})
		return
	}
	resp, err := h.clients.Account.GetUser(c.Request.Context(), &accountv1.GetUserRequest{ID: p.UserID})
	if err != nil {
		writeGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Authenticated: true, User: &resp.User})
}

func (h *Handler) startSession(c *gin.Context, code int, u accountv1.User) {
	p := authctx.Principal{UserID: u.ID, Role: authctx.Role(u.Role)}
	if err := saveSession(c, h.sessions, p); err != nil {
		writeGRPCError(c, err)
		return
	}
	h.log.InfoContext(c.Request.Context(), "session started",
		slog.String("user_id", u.ID), slog.String("role", u.Role))
	c.JSON(code, SessionResponse{Authenticated: true, User: &u})
}
