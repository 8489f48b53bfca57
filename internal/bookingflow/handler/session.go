package handler

import (
	"encoding/json"
	"net/http"

	"atelier/internal/bookingflow/service"
	httputil "atelier/pkg/http"
	"atelier/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type SessionHandler struct {
	service service.FlowService
	log     *logger.Logger
}

func NewSessionHandler(service service.FlowService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/flow/sessions", h.Open)
	router.GET("/api/v1/flow/sessions/:id", h.Get)
	router.POST("/api/v1/flow/sessions/:id/date", h.SelectDate)
	router.POST("/api/v1/flow/sessions/:id/time", h.SelectTime)
	router.POST("/api/v1/flow/sessions/:id/notes", h.SetNotes)
	router.POST("/api/v1/flow/sessions/:id/back", h.Back)
	router.POST("/api/v1/flow/sessions/:id/submit", h.Submit)
	router.POST("/api/v1/flow/sessions/:id/close", h.Close)
}

// Open accepts either an explicit studio/service pair or a sealed
// storefront deep-link token.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		StudioID  string `json:"studio_id"`
		ServiceID string `json:"service_id"`
		Token     string `json:"token"`
	}
	if !h.decode(w, r, &body, "Open") {
		return
	}

	var view *service.View
	var err error
	if body.Token != "" {
		view, err = h.service.OpenFromToken(r.Context(), body.Token)
	} else {
		view, err = h.service.Open(r.Context(), body.StudioID, body.ServiceID)
	}
	if err != nil {
		h.writeError(w, err, "Open")
		return
	}

	if err := httputil.WriteCreated(w, view); err != nil {
		h.log.Error("failed to write created response", "handler", "Open", "error", err)
	}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.Get(ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "Get")
		return
	}
	h.writeView(w, view, "Get")
}

func (h *SessionHandler) SelectDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Date string `json:"date"`
	}
	if !h.decode(w, r, &body, "SelectDate") {
		return
	}

	view, err := h.service.SelectDate(ps.ByName("id"), body.Date)
	if err != nil {
		h.writeError(w, err, "SelectDate")
		return
	}
	h.writeView(w, view, "SelectDate")
}

func (h *SessionHandler) SelectTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Time string `json:"time"`
	}
	if !h.decode(w, r, &body, "SelectTime") {
		return
	}

	view, err := h.service.SelectTime(ps.ByName("id"), body.Time)
	if err != nil {
		h.writeError(w, err, "SelectTime")
		return
	}
	h.writeView(w, view, "SelectTime")
}

func (h *SessionHandler) SetNotes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Notes string `json:"notes"`
	}
	if !h.decode(w, r, &body, "SetNotes") {
		return
	}

	view, err := h.service.SetNotes(ps.ByName("id"), body.Notes)
	if err != nil {
		h.writeError(w, err, "SetNotes")
		return
	}
	h.writeView(w, view, "SetNotes")
}

func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.Back(ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "Back")
		return
	}
	h.writeView(w, view, "Back")
}

func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var identity service.ClientIdentity
	if r.ContentLength > 0 {
		if !h.decode(w, r, &identity, "Submit") {
			return
		}
	}

	view, err := h.service.Submit(r.Context(), ps.ByName("id"), identity)
	if err != nil {
		h.writeError(w, err, "Submit")
		return
	}
	h.writeView(w, view, "Submit")
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Close(ps.ByName("id")); err != nil {
		h.writeError(w, err, "Close")
		return
	}
	httputil.WriteNoContent(w)
}

func (h *SessionHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "error", writeErr)
		}
		return false
	}
	return true
}

func (h *SessionHandler) writeView(w http.ResponseWriter, view *service.View, handlerName string) {
	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
