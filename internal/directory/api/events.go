package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fyyur/internal/apperrors"
	"fyyur/internal/utils"
)

var streamEntities = map[string]bool{"": true, "venue": true, "artist": true, "show": true}

// StreamEvents follows the change feed over Server-Sent Events. The optional
// ?entity= query narrows it to venues, artists or shows.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")
	if !streamEntities[entity] {
		ve := &apperrors.ValidationError{Entity: "stream"}
		ve.Add("entity", "must be one of venue, artist, show")
		h.fail(w, r, ve, "")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Message: "Streaming unsupported", Error: apperrors.KindStorage})
		return
	}

	// The server write timeout would otherwise cut the stream.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.Logger.Debug("SSE", fmt.Sprintf("clear write deadline: %v", err))
	}

	setupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	events := h.Stream.Subscribe(ctx, entity)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"entity\":%q}\n\n", entity)
	flusher.Flush()
	h.Logger.Info("SSE", fmt.Sprintf("Client connected to change stream (entity %q)", entity))

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize change event: %v", err))
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.Key(), event.Type, data)
			flusher.Flush()

		case <-ctx.Done():
			h.Logger.Debug("SSE", fmt.Sprintf("Client left change stream (entity %q)", entity))
			return
		}
	}
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
