package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ibvida-dev/escala-manager/backend/internal/scheduler"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("requisição atendida", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // com slog a pilha fica ilegível
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ministry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ministryIDParam := chi.URLParam(r, "id")
		ministryID, err := strconv.ParseInt(ministryIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "ID de ministério inválido")
			return
		}

		ministry, err := h.repository.GetMinistryByID(ministryID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "ministério não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		ministry.Roles = scheduler.RolesForMinistry(ministry.Name)

		ctx := context.WithValue(r.Context(), MinistryCtx, ministry)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) serviceDay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceDayIDParam := chi.URLParam(r, "id")
		serviceDayID, err := strconv.ParseInt(serviceDayIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "ID de dia de culto inválido")
			return
		}

		day, err := h.repository.GetServiceDayByID(serviceDayID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "dia de culto não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ServiceDayCtx, day)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) schedule(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheduleIDParam := chi.URLParam(r, "id")
		scheduleID, err := strconv.ParseInt(scheduleIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "ID de escala inválido")
			return
		}

		schedule, err := h.repository.GetScheduleByID(scheduleID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "escala não encontrada")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ScheduleCtx, schedule)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
