package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/ibvida-dev/escala-manager/backend/internal/scheduler"
	"github.com/ibvida-dev/escala-manager/backend/internal/utils"
)

// generationSummary é o registro curto guardado no redis após cada geração,
// consultável enquanto não expira.
type generationSummary struct {
	MinistryID    int64                 `json:"ministryID"`
	Month         string                `json:"month"`
	ScheduleCount int                   `json:"scheduleCount"`
	Flags         []domain.ScheduleFlag `json:"flags"`
	GeneratedAt   time.Time             `json:"generatedAt"`
}

var errInvalidExclude = errors.New("parâmetro exclude inválido")

func generationSummaryKey(ministryID int64, month string) string {
	return fmt.Sprintf("resumo_geracao_%d_%s", ministryID, month)
}

func (h *Handler) GenerateSchedules(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	var req struct {
		Month       string `json:"month" validate:"required"`
		ClearDrafts bool   `json:"clearDrafts"`
		Seed        *int64 `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	days, err := h.repository.GetServiceDaysByMonth(req.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(days) == 0 {
		h.errorResponse(w, r, "não há dias de culto cadastrados para o mês")
		return
	}

	members, err := h.repository.GetMinistryMembers(ministry.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, err := h.repository.GetAvailabilityEntriesByMonth(req.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.ClearDrafts {
		serviceDayIDs := make([]int64, len(days))
		for i, day := range days {
			serviceDayIDs[i] = day.ID
		}
		if err := h.repository.DeleteDraftSchedules(ministry.ID, serviceDayIDs); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// semente explícita permite reproduzir uma geração; sem ela o desempate é
	// aleatório de verdade
	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	people := make([]*domain.Person, len(members))
	for i, member := range members {
		people[i] = &member.Person
	}

	result := scheduler.NewGenerator(rng).Generate(&scheduler.GeneratorInput{
		MinistryID:   ministry.ID,
		Members:      people,
		ServiceDays:  days,
		Availability: scheduler.BuildAvailabilityMap(entries),
	})

	schedules := make([]*domain.Schedule, 0, len(result.Schedules))
	for _, generated := range result.Schedules {
		schedule := &domain.Schedule{
			MinistryID:   generated.MinistryID,
			ServiceDayID: generated.ServiceDayID,
			ServiceDate:  generated.ServiceDate,
			ServiceLabel: generated.ServiceLabel,
			Assignments:  generated.Assignments,
			Status:       generated.Status,
			Flags:        generated.Flags,
		}
		if err := h.repository.UpsertSchedule(schedule); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		schedules = append(schedules, schedule)
	}

	summary := generationSummary{
		MinistryID:    ministry.ID,
		Month:         req.Month,
		ScheduleCount: len(schedules),
		Flags:         result.Flags,
		GeneratedAt:   time.Now(),
	}
	summaryData, err := json.Marshal(summary)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, generationSummaryKey(ministry.ID, req.Month), summaryData, time.Duration(h.config.Generation.SummaryExpiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escalas geradas com sucesso", map[string]any{
		"schedules": schedules,
		"flags":     result.Flags,
		"loadMap":   result.LoadMap,
	})
}

func (h *Handler) GetGenerationSummary(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	month := r.URL.Query().Get("month")
	if err := utils.ValidateMonth(month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	summaryData, err := h.redisClient.Get(ctx, generationSummaryKey(ministry.ID, month)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.successResponse(w, r, "nenhuma geração registrada para o mês", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var summary generationSummary
	if err := json.Unmarshal([]byte(summaryData), &summary); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "resumo da geração obtido com sucesso", summary)
}

func (h *Handler) GetMinistrySchedules(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	month := r.URL.Query().Get("month")
	if err := utils.ValidateMonth(month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedules, err := h.repository.GetSchedulesByMinistryAndMonth(ministry.ID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escalas obtidas com sucesso", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	h.successResponse(w, r, "escala obtida com sucesso", schedule)
}

func (h *Handler) PublishSchedules(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	var req struct {
		Month string `json:"month" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	affected, err := h.repository.UpdateScheduleStatusByMonth(ministry.ID, req.Month, domain.ScheduleStatusDraft, domain.ScheduleStatusPublished)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if affected == 0 {
		h.errorResponse(w, r, "não há escalas em rascunho no mês")
		return
	}

	if err := h.notifySchedulesPublished(ministry, req.Month); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escalas publicadas com sucesso", map[string]any{"published": affected})
}

func (h *Handler) RevertSchedules(w http.ResponseWriter, r *http.Request) {
	ministry := r.Context().Value(MinistryCtx).(*domain.Ministry)

	var req struct {
		Month string `json:"month" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	affected, err := h.repository.UpdateScheduleStatusByMonth(ministry.ID, req.Month, domain.ScheduleStatusPublished, domain.ScheduleStatusDraft)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if affected == 0 {
		h.errorResponse(w, r, "não há escalas publicadas no mês")
		return
	}

	h.successResponse(w, r, "escalas revertidas para rascunho com sucesso", map[string]any{"reverted": affected})
}

// notifySchedulesPublished agrupa as escalas publicadas do mês por pessoa e envia
// uma mensagem por pessoa para a fila de email.
func (h *Handler) notifySchedulesPublished(ministry *domain.Ministry, month string) error {
	schedules, err := h.repository.GetSchedulesByMinistryAndMonth(ministry.ID, month)
	if err != nil {
		return err
	}

	members, err := h.repository.GetMinistryMembers(ministry.ID)
	if err != nil {
		return err
	}
	membersByID := make(map[int64]*domain.MinistryMember)
	for _, member := range members {
		membersByID[member.ID] = member
	}

	servicesByPerson := make(map[int64][]string)
	for _, schedule := range schedules {
		if schedule.Status != domain.ScheduleStatusPublished {
			continue
		}
		for _, assignment := range schedule.Assignments {
			service := fmt.Sprintf("%s (%s)", schedule.ServiceDate, schedule.ServiceLabel)
			servicesByPerson[assignment.PersonID] = append(servicesByPerson[assignment.PersonID], service)
		}
	}

	for personID, services := range servicesByPerson {
		member, ok := membersByID[personID]
		if !ok {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "schedule_published",
			To:   member.Email,
			Data: domain.SchedulePublishedMailData{
				PersonName:   member.Name,
				MinistryName: ministry.Name,
				Month:        month,
				Services:     services,
			},
		}
		if err := h.publishMailMessage(mailMessage); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) publishMailMessage(mailMessage domain.MailMessage) error {
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func (h *Handler) PreviewSchedules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dates       []string `json:"dates" validate:"required,min=1,dive,required"`
		MinistryIDs []int64  `json:"ministryIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rosters := make([]*scheduler.MinistryRoster, 0, len(req.MinistryIDs))
	for _, ministryID := range req.MinistryIDs {
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

		members, err := h.repository.GetMinistryMembers(ministryID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		people := make([]*domain.Person, len(members))
		for i, member := range members {
			people[i] = &member.Person
		}

		rosters = append(rosters, &scheduler.MinistryRoster{
			ID:     ministry.ID,
			Name:   ministry.Name,
			Roles:  scheduler.RolesForMinistry(ministry.Name),
			People: people,
		})
	}

	assignments := scheduler.GenerateForMinistries(req.Dates, rosters)

	h.successResponse(w, r, "prévia gerada com sucesso", assignments)
}

func (h *Handler) suggestionInput(r *http.Request, schedule *domain.Schedule) (*scheduler.SuggestionInput, []*domain.Schedule, error) {
	members, err := h.repository.GetMinistryMembers(schedule.MinistryID)
	if err != nil {
		return nil, nil, err
	}
	people := make([]*domain.Person, len(members))
	for i, member := range members {
		people[i] = &member.Person
	}

	daySchedules, err := h.repository.GetSchedulesByServiceDay(schedule.ServiceDayID)
	if err != nil {
		return nil, nil, err
	}

	exclude, err := parseExcludeParam(r.URL.Query().Get("exclude"))
	if err != nil {
		return nil, nil, err
	}

	monthSchedules, err := h.repository.GetSchedulesByMinistryAndMonth(schedule.MinistryID, monthOfDate(schedule.ServiceDate))
	if err != nil {
		return nil, nil, err
	}

	return &scheduler.SuggestionInput{
		Target:       schedule,
		DaySchedules: daySchedules,
		Members:      people,
		Exclude:      exclude,
	}, monthSchedules, nil
}

func (h *Handler) GetScheduleSuggestions(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	in, _, err := h.suggestionInput(r, schedule)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidExclude):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "sugestões calculadas com sucesso", scheduler.ScheduleSuggestions(in))
}

func (h *Handler) GetBestReplacement(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	in, monthSchedules, err := h.suggestionInput(r, schedule)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidExclude):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// duas heurísticas lado a lado: a pontuada por dia livre e a de menor carga mensal
	h.successResponse(w, r, "melhor substituto calculado com sucesso", map[string]any{
		"freeOnDay":   scheduler.BestScheduleSuggestion(in),
		"leastLoaded": scheduler.SuggestBestReplacement(in.Members, in.DaySchedules, monthSchedules, in.Exclude),
	})
}

func (h *Handler) ReplaceAssignment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		OldPersonID int64 `json:"oldPersonID" validate:"required"`
		NewPersonID int64 `json:"newPersonID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	newPerson, err := h.repository.GetPersonByID(req.NewPersonID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "substituto não encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.ReplaceAssignment(schedule.ID, req.OldPersonID, req.NewPersonID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "a pessoa não está escalada nesta escala")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	ministry, err := h.repository.GetMinistryByID(schedule.MinistryID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "assignment_replaced",
		To:   newPerson.Email,
		Data: domain.AssignmentReplacedMailData{
			PersonName:   newPerson.Name,
			MinistryName: ministry.Name,
			ServiceDate:  schedule.ServiceDate,
			ServiceLabel: schedule.ServiceLabel,
		},
	}
	if err := h.publishMailMessage(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "substituição realizada com sucesso", nil)
}

func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		PersonID   int64  `json:"personID" validate:"required"`
		Attendance string `json:"attendance" validate:"required,oneof=pending confirmed declined"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.SetAssignmentAttendance(schedule.ID, req.PersonID, domain.AttendanceStatus(req.Attendance)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "a pessoa não está escalada nesta escala")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "presença atualizada com sucesso", nil)
}

func parseExcludeParam(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	exclude := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errInvalidExclude
		}
		exclude = append(exclude, id)
	}

	return exclude, nil
}

func monthOfDate(dateKey string) string {
	if len(dateKey) < 7 {
		return dateKey
	}
	return dateKey[:7]
}
