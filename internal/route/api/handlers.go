package api

import (
	"net/http"
	"time"

	"realgo/internal/route/app"
	"realgo/internal/shared/util"
)

type Handler struct {
	service *app.RouteService
	logger  *util.Logger
}

func NewHandler(service *app.RouteService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public route catalog endpoints.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /routes", h.ListRoutesHandler)
	mux.HandleFunc("GET /routes/{route_id}", h.GetRouteDetailHandler)
}

func (h *Handler) ListRoutesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		h.logger.Error("ListRoutesHandler", "failed to list routes", err)
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, routes)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) GetRouteDetailHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	routeID := r.PathValue("route_id")

	detail, err := h.service.GetRouteDetail(r.Context(), routeID)
	if err != nil {
		h.logger.Warn("GetRouteDetailHandler", "route lookup failed: "+err.Error())
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, detail)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
