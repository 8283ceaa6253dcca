package handler

import (
	"net/http"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/ibvida-dev/escala-manager/backend/internal/utils"
)

func (h *Handler) GetServiceDays(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if err := utils.ValidateMonth(month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	days, err := h.repository.GetServiceDaysByMonth(month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "dias de culto obtidos com sucesso", days)
}

func (h *Handler) GetServiceDay(w http.ResponseWriter, r *http.Request) {
	day := r.Context().Value(ServiceDayCtx).(*domain.ServiceDay)

	h.successResponse(w, r, "dia de culto obtido com sucesso", day)
}

func (h *Handler) GetServiceDaySchedules(w http.ResponseWriter, r *http.Request) {
	day := r.Context().Value(ServiceDayCtx).(*domain.ServiceDay)

	schedules, err := h.repository.GetSchedulesByServiceDay(day.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escalas do dia obtidas com sucesso", schedules)
}
