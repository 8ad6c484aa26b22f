package api

import (
	"encoding/json"
	"net/http"
	"time"

	"realgo/internal/shared/middleware"
	"realgo/internal/shared/util"
	"realgo/internal/user/app"
	"realgo/internal/user/domain"
)

type Handler struct {
	service *app.UserService
	logger  *util.Logger
}

func NewHandler(service *app.UserService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts user and vehicle endpoints behind the auth middleware.
func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	mux.Handle("POST /users/sync", auth(http.HandlerFunc(h.SyncUserHandler)))
	mux.Handle("GET /users/me", auth(http.HandlerFunc(h.GetMeHandler)))
	mux.Handle("POST /vehicles", auth(http.HandlerFunc(h.RegisterVehicleHandler)))
	mux.Handle("GET /vehicles", auth(http.HandlerFunc(h.ListVehiclesHandler)))
}

func (h *Handler) SyncUserHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())

	var input domain.SyncUserInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.logger.Warn("SyncUserHandler", "invalid JSON body")
		util.WriteErrorMessage(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.service.SyncUser(r.Context(), subject, role, input)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())

	user, err := h.service.GetUser(r.Context(), subject)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) RegisterVehicleHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())

	var input domain.RegisterVehicleInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.logger.Warn("RegisterVehicleHandler", "invalid JSON body")
		util.WriteErrorMessage(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	vehicle, err := h.service.RegisterVehicle(r.Context(), subject, role, input)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, vehicle)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ListVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())

	vehicles, err := h.service.ListVehicles(r.Context(), subject, role)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, vehicles)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
