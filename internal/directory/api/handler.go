package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fyyur/internal/apperrors"
	"fyyur/internal/logger"
	"fyyur/internal/metrics"
	"fyyur/internal/models"
	"fyyur/internal/notice"
	"fyyur/internal/sse"
	"fyyur/internal/utils"
)

type DirectoryService interface {
	CreateVenue(ctx context.Context, in models.VenueInput) (*models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, upd models.UpdateVenueInput) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	SearchVenues(ctx context.Context, term string) (models.SearchResult[models.Venue], error)
	ListVenueGroupsByLocation(ctx context.Context) ([]models.LocationGroup, error)
	GetVenueDetail(ctx context.Context, id int64) (*models.VenueDetail, error)

	CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, upd models.UpdateArtistInput) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtists(ctx context.Context, term string) (models.SearchResult[models.Artist], error)
	GetArtistDetail(ctx context.Context, id int64) (*models.ArtistDetail, error)

	CreateShow(ctx context.Context, in models.ShowInput) (*models.Show, error)
	ListShows(ctx context.Context) ([]models.ShowListing, error)
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Service DirectoryService
	Notices notice.Store
	Store   Pinger
	Logger  *logger.Logger

	// Stream mounts GET /events when set.
	Stream *sse.Broadcaster

	// MetricsPath mounts the Prometheus endpoint when set.
	MetricsPath string
}

func NewHandler(svc DirectoryService, notices notice.Store, store Pinger, log *logger.Logger) *Handler {
	return &Handler{Service: svc, Notices: notices, Store: store, Logger: log}
}

// Routes builds the router for the whole directory surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(h.AccessLog)
	r.Use(h.Session)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Page not found", apperrors.ErrNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusMethodNotAllowed, utils.APIResponse{Message: "Method not allowed", Error: "method_not_allowed"})
	})

	r.Get("/", h.Home)
	r.Get("/notices", h.PopNotices)
	if h.MetricsPath != "" {
		r.Handle(h.MetricsPath, metrics.Handler())
	}
	if h.Stream != nil {
		r.Get("/events", h.StreamEvents)
	}

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Post("/create", h.CreateVenue)
		r.Route("/{venueID}", func(r chi.Router) {
			r.Get("/", h.GetVenue)
			r.Delete("/", h.DeleteVenue)
			r.Post("/delete", h.DeleteVenue)
			r.Get("/edit", h.EditVenueForm)
			r.Post("/edit", h.EditVenue)
		})
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Post("/create", h.CreateArtist)
		r.Route("/{artistID}", func(r chi.Router) {
			r.Get("/", h.GetArtist)
			r.Get("/edit", h.EditArtistForm)
			r.Post("/edit", h.EditArtist)
		})
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Post("/create", h.CreateShow)
	})

	return r
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"service": "fyyur", "store": "ok"}
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			h.Logger.Error("DATABASE", fmt.Sprintf("health check: %v", err))
			utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("Store unavailable", err))
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Fyyur is up", status))
}

func (h *Handler) PopNotices(w http.ResponseWriter, r *http.Request) {
	if h.Notices == nil {
		utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", []notice.Notice{}))
		return
	}
	notices, err := h.Notices.Pop(r.Context(), sessionID(r.Context()))
	if err != nil {
		h.Logger.Error("NOTICE", fmt.Sprintf("pop notices: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not load notices", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", notices))
}

// notify queues a notice for the caller's session. Failing to queue it never
// fails the request.
func (h *Handler) notify(r *http.Request, level notice.Level, message string) {
	if h.Notices == nil {
		return
	}
	if err := h.Notices.Push(r.Context(), sessionID(r.Context()), notice.Notice{Level: level, Message: message}); err != nil {
		h.Logger.Warn("NOTICE", fmt.Sprintf("push notice: %v", err))
	}
}

// fail answers with the status matching err. Validation failures are
// reported field by field, in the "field: (reason)" form of the web forms;
// anything else uses fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	message := fallback
	if ve, ok := asValidation(err); ok {
		parts := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			parts = append(parts, fmt.Sprintf("%s: (%s)", f.Field, f.Reason))
		}
		message = strings.Join(parts, "; ")
	}

	status := utils.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	}
	h.notify(r, notice.Error, message)
	utils.WriteJSON(w, status, utils.ErrorResponse(message, err))
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	if message != "" {
		h.notify(r, notice.Success, message)
	}
	utils.WriteJSON(w, status, utils.SuccessResponse(message, data))
}

func asValidation(err error) (*apperrors.ValidationError, bool) {
	var ve *apperrors.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, param, entity string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", entity, raw, apperrors.ErrNotFound)
	}
	return id, nil
}

// decodeJSON reads the request body into dst. A malformed body is reported
// as a validation failure on the "body" field.
func decodeJSON(r *http.Request, entity string, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		ve := &apperrors.ValidationError{Entity: entity}
		ve.Add("body", "invalid JSON: "+err.Error())
		return ve
	}
	return nil
}

// searchTerm accepts the term as a form field or as {"search_term": ...}.
func searchTerm(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			SearchTerm string `json:"search_term"`
		}
		if err := decodeJSON(r, "search", &body); err != nil {
			return "", err
		}
		return body.SearchTerm, nil
	}
	return r.FormValue("search_term"), nil
}

func asReferential(err error) (*apperrors.ReferentialError, bool) {
	var ref *apperrors.ReferentialError
	ok := errors.As(err, &ref)
	return ref, ok
}
