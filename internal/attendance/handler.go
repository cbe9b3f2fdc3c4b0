package attendance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/workhub/leave-management/internal/transport"
	"github.com/workhub/leave-management/pkg/logger"
)

type ServiceAPI interface {
	ClockIn(employeeID int64, dto ClockInDTO) (*Record, error)
	ClockOut(employeeID int64, dto ClockOutDTO) (*Record, error)
	LastFour(employeeID int64) ([]*Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func employeeIDParam(r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	return id, err == nil
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid Employee ID format")
		return
	}

	var dto ClockInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ClockIn: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.ClockIn(employeeID, dto)
	if err != nil {
		h.Logger.Error("ClockIn: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Clock-in recorded successfully. Employee reference updated.",
		"record":  rec,
	})
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid Employee ID format")
		return
	}

	var dto ClockOutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ClockOut: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.ClockOut(employeeID, dto)
	if err != nil {
		h.Logger.Error("ClockOut: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Clock-out time and total work hours updated successfully.",
		"record":  rec,
	})
}

func (h *Handler) LastFourDays(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid Employee ID format")
		return
	}

	records, err := h.Service.LastFour(employeeID)
	if err != nil {
		h.Logger.Error("LastFourDays: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"employee_id":         employeeID,
		"most_recent_records": records,
	})
}
