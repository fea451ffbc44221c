package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/outfitly/outfitly/internal/conversation"
	"github.com/outfitly/outfitly/pkg/handlers"
	"github.com/outfitly/outfitly/pkg/routes"
)

// Handler exposes the chat webhook. The transport adapter posts
// normalized events here and delivers the returned replies.
type Handler struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// EventResponse is the webhook response body.
type EventResponse struct {
	Replies []conversation.Reply `json:"replies"`
}

// NewHandler creates a Handler over the given orchestrator.
func NewHandler(orchestrator *Orchestrator, logger *slog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       logger.With("handler", "chat"),
	}
}

// Routes returns the route group definition for chat endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/chat",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/events", Handler: h.Event},
		},
	}
}

// Event processes one inbound chat event and returns the replies to deliver.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	var event InboundEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	replies, err := h.orchestrator.Process(r.Context(), event)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if replies == nil {
		replies = []conversation.Reply{}
	}

	handlers.RespondJSON(w, http.StatusOK, EventResponse{Replies: replies})
}
