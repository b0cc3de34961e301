package api

import (
	"net/http"

	"fyyur/internal/models"
	"fyyur/internal/utils"
)

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.ListVenueGroupsByLocation(r.Context())
	if err != nil {
		h.fail(w, r, err, "An error occurred. Venues could not be loaded.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", groups))
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	result, err := h.Service.SearchVenues(r.Context(), term)
	if err != nil {
		h.fail(w, r, err, "An error occurred. Search failed.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", result))
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueID", "venue")
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	detail, err := h.Service.GetVenueDetail(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", detail))
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var in models.VenueInput
	if err := decodeJSON(r, "venue", &in); err != nil {
		h.fail(w, r, err, "")
		return
	}

	venue, err := h.Service.CreateVenue(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "An error occurred. Venue "+in.Name+" could not be listed.")
		return
	}
	h.succeed(w, r, http.StatusCreated, "Venue "+venue.Name+" was successfully listed!", venue)
}

// EditVenueForm returns the stored record so a form can be pre-filled.
func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueID", "venue")
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", venue))
}

func (h *Handler) EditVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueID", "venue")
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	var upd models.UpdateVenueInput
	if err := decodeJSON(r, "venue", &upd); err != nil {
		h.fail(w, r, err, "")
		return
	}

	venue, err := h.Service.UpdateVenue(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err, "An error occurred, please try again.")
		return
	}
	h.succeed(w, r, http.StatusOK, "Venue "+venue.Name+" updated!", venue)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "venueID", "venue")
	if err != nil {
		h.fail(w, r, err, "Venue not found")
		return
	}
	if err := h.Service.DeleteVenue(r.Context(), id); err != nil {
		message := "An error occurred. The Venue could not be deleted."
		if ref, ok := asReferential(err); ok {
			message = "The Venue could not be deleted: it " + ref.Reason + "."
		}
		h.fail(w, r, err, message)
		return
	}
	h.succeed(w, r, http.StatusOK, "The Venue has been successfully deleted!", nil)
}
