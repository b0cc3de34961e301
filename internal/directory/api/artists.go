package api

import (
	"net/http"

	"fyyur/internal/models"
	"fyyur/internal/utils"
)

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.fail(w, r, err, "An error occurred. Artists could not be loaded.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", artists))
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	result, err := h.Service.SearchArtists(r.Context(), term)
	if err != nil {
		h.fail(w, r, err, "An error occurred. Search failed.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", result))
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistID", "artist")
	if err != nil {
		h.fail(w, r, err, "Artist not found")
		return
	}
	detail, err := h.Service.GetArtistDetail(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Artist not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", detail))
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var in models.ArtistInput
	if err := decodeJSON(r, "artist", &in); err != nil {
		h.fail(w, r, err, "")
		return
	}

	artist, err := h.Service.CreateArtist(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "An error occurred. Artist "+in.Name+" could not be listed.")
		return
	}
	h.succeed(w, r, http.StatusCreated, "Artist "+artist.Name+" was successfully listed!", artist)
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistID", "artist")
	if err != nil {
		h.fail(w, r, err, "Artist not found")
		return
	}
	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Artist not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", artist))
}

func (h *Handler) EditArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "artistID", "artist")
	if err != nil {
		h.fail(w, r, err, "Artist not found")
		return
	}
	var upd models.UpdateArtistInput
	if err := decodeJSON(r, "artist", &upd); err != nil {
		h.fail(w, r, err, "")
		return
	}

	artist, err := h.Service.UpdateArtist(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err, "An error occurred, please try again.")
		return
	}
	h.succeed(w, r, http.StatusOK, "Artist "+artist.Name+" updated!", artist)
}
