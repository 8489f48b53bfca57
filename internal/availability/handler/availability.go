package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"atelier/internal/availability/service"
	apperrors "atelier/pkg/errors"
	httputil "atelier/pkg/http"
	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/schedules", h.CreateSchedule)
	router.GET("/api/v1/schedules", h.GetAllSchedules)
	router.GET("/api/v1/schedules/:id", h.GetScheduleByID)
	router.PATCH("/api/v1/schedules/:id", h.UpdateSchedule)
	router.DELETE("/api/v1/schedules/:id", h.DeleteSchedule)

	router.GET("/api/v1/availability", h.GetAvailability)
	router.GET("/api/v1/availability/dates", h.GetSelectableDates)
	router.GET("/api/v1/availability/slots", h.GetSlots)
}

func (h *AvailabilityHandler) CreateSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var sc model.StudioSchedule
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateSchedule", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &sc); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateSchedule", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, sc); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateSchedule", "error", err)
	}
}

func (h *AvailabilityHandler) GetScheduleByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sc, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetScheduleByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sc); err != nil {
		h.log.Error("failed to write success response", "handler", "GetScheduleByID", "error", err)
	}
}

func (h *AvailabilityHandler) GetAllSchedules(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllSchedules", "error", writeErr)
		}
		return
	}

	schedules, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllSchedules", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, schedules, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAllSchedules", "error", err)
	}
}

func (h *AvailabilityHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.StudioScheduleUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateSchedule", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateSchedule", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"status": "updated"}); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateSchedule", "error", err)
	}
}

func (h *AvailabilityHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteSchedule", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	studioID := r.URL.Query().Get("studio_id")
	if studioID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("studio_id query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "error", writeErr)
		}
		return
	}

	avail, err := h.service.AvailabilityFor(r.Context(), studioID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, avail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "error", err)
	}
}

func (h *AvailabilityHandler) GetSelectableDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	studioID := r.URL.Query().Get("studio_id")
	if studioID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("studio_id query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSelectableDates", "error", writeErr)
		}
		return
	}

	from := time.Now()
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(model.CalendarDateLayout, fromStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("from must be in YYYY-MM-DD format")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetSelectableDates", "error", writeErr)
			}
			return
		}
		from = parsed
	}

	dates, err := h.service.SelectableDates(r.Context(), studioID, from)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSelectableDates", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dates); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSelectableDates", "error", err)
	}
}

func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	studioID := query.Get("studio_id")
	date := query.Get("date")
	if studioID == "" || date == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("studio_id and date query parameters are required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSlots", "error", writeErr)
		}
		return
	}

	slots, err := h.service.SlotsFor(r.Context(), studioID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSlots", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSlots", "error", err)
	}
}
