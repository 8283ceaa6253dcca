package handler

import (
	"net/http"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/ibvida-dev/escala-manager/backend/internal/scheduler"
)

func (h *Handler) GetAllMinistries(w http.ResponseWriter, r *http.Request) {
	ministries, err := h.repository.GetAllMinistries()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, ministry := range ministries {
		ministry.Roles = scheduler.RolesForMinistry(ministry.Name)
	}

	h.successResponse(w, r, "ministérios obtidos com sucesso", ministries)
}

func (h *Handler) GetMinistryMembers(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	members, err := h.repository.GetMinistryMembers(ministry.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "membros do ministério obtidos com sucesso", members)
}
