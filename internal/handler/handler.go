package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ibvida-dev/escala-manager/backend/internal/config"
	"github.com/ibvida-dev/escala-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pt_br_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/ministries", func(r chi.Router) {
		r.Get("/", h.GetAllMinistries)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.ministry)
			r.Get("/members", h.GetMinistryMembers)
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.GetMinistrySchedules)
				r.Post("/generate", h.GenerateSchedules)
				r.Get("/summary", h.GetGenerationSummary)
				r.Post("/publish", h.PublishSchedules)
				r.Post("/revert", h.RevertSchedules)
			})
		})
	})

	h.Mux.Route("/service-days", func(r chi.Router) {
		r.Get("/", h.GetServiceDays)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.serviceDay)
			r.Get("/", h.GetServiceDay)
			r.Get("/schedules", h.GetServiceDaySchedules)
		})
	})

	h.Mux.Route("/availability", func(r chi.Router) {
		r.Post("/", h.DeclareAvailability)
		r.Get("/{personID}", h.GetPersonAvailability)
	})

	h.Mux.Route("/schedules", func(r chi.Router) {
		r.Post("/preview", h.PreviewSchedules)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.schedule)
			r.Get("/", h.GetSchedule)
			r.Route("/suggestions", func(r chi.Router) {
				r.Get("/", h.GetScheduleSuggestions)
				r.Get("/best", h.GetBestReplacement)
			})
			r.Patch("/assignments", h.ReplaceAssignment)
			r.Patch("/attendance", h.SetAttendance)
		})
	})
}
