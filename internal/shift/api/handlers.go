package api

import (
	"encoding/json"
	"net/http"
	"time"

	"realgo/internal/shared/middleware"
	"realgo/internal/shared/util"
	"realgo/internal/shift/app"
	"realgo/internal/shift/domain"
)

type Handler struct {
	service *app.ShiftService
	logger  *util.Logger
}

func NewHandler(service *app.ShiftService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	mux.Handle("POST /shifts", auth(http.HandlerFunc(h.OpenShiftHandler)))
	mux.Handle("POST /shifts/{shift_id}/close", auth(http.HandlerFunc(h.CloseShiftHandler)))
	mux.Handle("GET /routes/{route_id}/shifts", auth(http.HandlerFunc(h.ListOpenShiftsHandler)))
}

func (h *Handler) OpenShiftHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())

	var input domain.OpenShiftInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.logger.Warn("OpenShiftHandler", "invalid JSON body")
		util.WriteErrorMessage(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	shift, err := h.service.OpenShift(r.Context(), subject, role, input)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, shift)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) CloseShiftHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())
	shiftID := r.PathValue("shift_id")

	shift, err := h.service.CloseShift(r.Context(), shiftID, subject, role)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, shift)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ListOpenShiftsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	routeID := r.PathValue("route_id")

	shifts, err := h.service.ListOpenShifts(r.Context(), routeID)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, shifts)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
