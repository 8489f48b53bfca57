package handler

import (
	"encoding/json"
	"net/http"

	"atelier/internal/requests/service"
	apperrors "atelier/pkg/errors"
	httputil "atelier/pkg/http"
	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RequestHandler struct {
	service service.RequestService
	log     *logger.Logger
}

func NewRequestHandler(service service.RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		log:     log,
	}
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/requests", h.Create)
	router.GET("/api/v1/requests", h.GetByStudio)
	router.GET("/api/v1/requests/:id", h.GetByID)
	router.PATCH("/api/v1/requests/:id", h.UpdateStatus)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, req); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, req); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *RequestHandler) GetByStudio(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	studioID := query.Get("studio_id")
	if studioID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("studio_id query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByStudio", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByStudio", "error", writeErr)
		}
		return
	}

	requests, totalCount, err := h.service.GetByStudio(r.Context(), studioID, query.Get("status"), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByStudio", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, requests, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByStudio", "error", err)
	}
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BookingRequestUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"status": "updated"}); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}
