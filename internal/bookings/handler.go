package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

// Handler exposes the customer calendar over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a calendar HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("bookings: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts calendar endpoints under a chi router.
// Expected to be mounted under /v1/customers/{customerID}
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/calendar", h.GetMonth)
	r.Get("/calendar/days/{date}", h.GetDay)
	r.Post("/bookings", h.CreateBooking)
}

// GetMonth returns the month grid.
// GET /v1/customers/{customerID}/calendar?month=YYYY-MM
// month defaults to the current month in the configured timezone.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if customerID == "" {
		jsonError(w, "missing customerID", http.StatusBadRequest)
		return
	}

	month := h.service.CurrentMonth()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := calendar.ParseMonth(raw)
		if err != nil {
			jsonError(w, "invalid month, use YYYY-MM", http.StatusBadRequest)
			return
		}
		month = parsed
	}

	view, err := h.service.MonthView(r.Context(), customerID, month)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetDay returns the bookings for one day.
// GET /v1/customers/{customerID}/calendar/days/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if customerID == "" {
		jsonError(w, "missing customerID", http.StatusBadRequest)
		return
	}

	day, err := h.service.DayDetail(r.Context(), customerID, chi.URLParam(r, "date"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// CreateBooking records a booking for the customer.
// POST /v1/customers/{customerID}/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if customerID == "" {
		jsonError(w, "missing customerID", http.StatusBadRequest)
		return
	}

	var b Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	// IDs are assigned by the store.
	b.ID = ""
	b.CustomerID = customerID

	if err := h.service.Record(r.Context(), &b); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidMonth), errors.Is(err, ErrInvalidBooking):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrReadOnly):
		jsonError(w, "bookings cannot be created against this source", http.StatusNotImplemented)
	case errors.Is(err, ErrSourceUnavailable):
		jsonError(w, "booking source unavailable", http.StatusBadGateway)
	default:
		h.logger.Error("bookings: request failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
