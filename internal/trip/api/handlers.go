package api

import (
	"encoding/json"
	"net/http"
	"time"

	"realgo/internal/shared/middleware"
	"realgo/internal/shared/util"
	"realgo/internal/trip/app"
	"realgo/internal/trip/domain"
)

type Handler struct {
	service *app.TripService
	logger  *util.Logger
}

func NewHandler(service *app.TripService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	mux.Handle("POST /trips", auth(http.HandlerFunc(h.CreateTripHandler)))
	mux.Handle("GET /trips/{trip_id}", auth(http.HandlerFunc(h.GetTripHandler)))

	for _, action := range []string{"accept", "reject", "onboard", "complete", "cancel"} {
		mux.Handle("POST /trips/{trip_id}/"+action, auth(h.transitionHandler(action)))
	}

	mux.Handle("POST /trips/{trip_id}/messages", auth(http.HandlerFunc(h.SendMessageHandler)))
	mux.Handle("GET /trips/{trip_id}/messages", auth(http.HandlerFunc(h.ListMessagesHandler)))
	mux.Handle("POST /trips/{trip_id}/messages/read", auth(http.HandlerFunc(h.MarkMessagesReadHandler)))
}

func (h *Handler) CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())

	var input domain.CreateTripInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.logger.Warn("CreateTripHandler", "invalid JSON body")
		util.WriteErrorMessage(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	trip, err := h.service.CreateTrip(r.Context(), subject, input)
	if err != nil {
		h.logger.Warn("CreateTripHandler", "trip creation failed: "+err.Error())
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, trip)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) GetTripHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())

	trip, err := h.service.GetTrip(r.Context(), r.PathValue("trip_id"), subject, role)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, trip)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) transitionHandler(action string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		subject := middleware.Subject(r.Context())
		role := middleware.Role(r.Context())
		tripID := r.PathValue("trip_id")

		parsed, err := domain.ParseAction(action)
		if err != nil {
			util.WriteError(w, err)
			return
		}

		trip, err := h.service.Transition(r.Context(), tripID, subject, role, parsed)
		if err != nil {
			h.logger.Warn("TransitionHandler", action+" failed for trip "+tripID+": "+err.Error())
			util.WriteError(w, err)
			return
		}

		util.WriteJSON(w, http.StatusOK, trip)
		h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
	})
}

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	tripID := r.PathValue("trip_id")

	var body struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("SendMessageHandler", "invalid JSON body")
		util.WriteErrorMessage(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	msg, err := h.service.SendMessage(r.Context(), tripID, subject, body.Body)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, msg)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	role := middleware.Role(r.Context())
	tripID := r.PathValue("trip_id")

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.WriteErrorMessage(w, "since must be an RFC3339 timestamp", http.StatusBadRequest)
			return
		}
		since = &parsed
	}

	messages, err := h.service.ListMessages(r.Context(), tripID, subject, role, since)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, messages)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) MarkMessagesReadHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := middleware.Subject(r.Context())
	tripID := r.PathValue("trip_id")

	updated, err := h.service.MarkMessagesRead(r.Context(), tripID, subject)
	if err != nil {
		util.WriteError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]int64{"marked_read": updated})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
