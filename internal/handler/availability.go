package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ibvida-dev/escala-manager/backend/internal/utils"
)

func (h *Handler) DeclareAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID     int64    `json:"personID" validate:"required"`
		ServiceDayID int64    `json:"serviceDayID" validate:"required"`
		Turns        []string `json:"turns"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// os turnos declarados precisam existir no dia, a menos de acentos e caixa
	day, err := h.repository.GetServiceDayByID(req.ServiceDayID)
	if err != nil {
		h.errorResponse(w, r, "dia de culto não encontrado")
		return
	}
	for _, turn := range req.Turns {
		if !utils.ContainsTurn(day.Turns, turn) {
			h.errorResponse(w, r, "turno não existe neste dia de culto: "+turn)
			return
		}
	}

	// lista vazia de turnos retira a declaração anterior da pessoa para o dia
	if err := h.repository.InsertAvailability(req.PersonID, req.ServiceDayID, req.Turns); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "availability_declarations_person_id_fkey":
				h.errorResponse(w, r, "pessoa não encontrada")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "disponibilidade declarada com sucesso", nil)
}

func (h *Handler) GetPersonAvailability(w http.ResponseWriter, r *http.Request) {
	personIDParam := chi.URLParam(r, "personID")
	personID, err := strconv.ParseInt(personIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de pessoa inválido")
		return
	}

	month := r.URL.Query().Get("month")
	if err := utils.ValidateMonth(month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetPersonAvailabilityByMonth(personID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "disponibilidade obtida com sucesso", entries)
}
