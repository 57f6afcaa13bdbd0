package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/teamcal-dev/shift-calendar/backend/internal/config"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)
		r.Use(h.organization)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/notifications", h.GetMyNotifications)
		})

		r.Route("/organization", func(r chi.Router) {
			r.Get("/", h.GetOrganization)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/settings", h.UpdateOrganizationSettings)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees) // 员工也可以看到同事名单，方便看整个团队的班表
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Get("/teams", h.GetAllTeams)
		r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/teams", h.CreateTeam)
		r.Get("/locations", h.GetAllLocations)
		r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/locations", h.CreateLocation)

		r.Route("/schedule-templates", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateScheduleTemplate)
			r.Get("/", h.GetAllScheduleTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduleTemplate)
				r.Get("/", h.GetScheduleTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateScheduleTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteScheduleTemplate)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.QueryShifts)
			r.Get("/calendar", h.GetCalendar)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateShift)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/auto-fill", h.AutoFillSchedule)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/clear", h.ClearSchedule)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/move", h.MoveShift)
			})
		})

		r.Get("/dashboard/metrics", h.GetDashboardMetrics)
	})
}
