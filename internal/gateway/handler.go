package gateway

import (
	"log/slog"

	"github.com/gorilla/sessions"
)

// Handler serves the JSON API by forwarding requests to the API process.
type Handler struct {
	clients  Clients
	sessions sessions.Store
	log      *slog.Logger
}

func NewHandler(clients Clients, store sessions.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{clients: clients, sessions: store, log: log}
}
