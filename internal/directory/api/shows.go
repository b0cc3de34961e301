package api

import (
	"net/http"

	"fyyur/internal/apperrors"
	"fyyur/internal/models"
	"fyyur/internal/utils"
)

// showRequest accepts start_time as RFC 3339 or "YYYY-MM-DD HH:MM:SS".
type showRequest struct {
	VenueID   int64  `json:"venue_id"`
	ArtistID  int64  `json:"artist_id"`
	StartTime string `json:"start_time"`
}

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShows(r.Context())
	if err != nil {
		h.fail(w, r, err, "An error occurred. Shows could not be loaded.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", shows))
}

func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := decodeJSON(r, "show", &req); err != nil {
		h.fail(w, r, err, "")
		return
	}

	start, err := utils.ParseTime(req.StartTime)
	if err != nil {
		ve := &apperrors.ValidationError{Entity: "show"}
		ve.Add("start_time", "must be a date and time")
		h.fail(w, r, ve, "")
		return
	}

	show, err := h.Service.CreateShow(r.Context(), models.ShowInput{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: start,
	})
	if err != nil {
		h.fail(w, r, err, "An error occurred. Show could not be listed.")
		return
	}
	h.succeed(w, r, http.StatusCreated, "Show was successfully listed!", show)
}
