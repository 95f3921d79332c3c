// Package httpapi exposes the clinic operations as a JSON API on gin.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Leganyst/clinic-desk/internal/auth"
	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/service"
)

// Checker — проверка живости для /healthz (health.Server).
type Checker interface {
	Check(ctx context.Context) error
}

type Options struct {
	Service *service.Clinic
	// Tokens == nil — режим одного оператора без аутентификации.
	Tokens    *auth.Tokens
	Operators calendar.OperatorStore
	Health    Checker
	Metrics   http.Handler
	Logger    *slog.Logger
	// AllowOrigins для CORS; пусто — CORS не включается.
	AllowOrigins []string
}

var (
	frontDesk = []calendar.OperatorRole{
		calendar.OperatorRoleAdmin,
		calendar.OperatorRoleNurse,
		calendar.OperatorRoleCashier,
		calendar.OperatorRoleDoctor,
	}
	adminOnly = []calendar.OperatorRole{calendar.OperatorRoleAdmin}
)

func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger))

	if len(opts.AllowOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.AllowOrigins
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", headerRequestID}
		corsCfg.ExposeHeaders = []string{headerRequestID, "Content-Disposition"}
		corsCfg.MaxAge = 12 * time.Hour
		r.Use(cors.New(corsCfg))
	}

	h := &handler{svc: opts.Service}

	r.GET("/healthz", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health.Check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, Response{
					Status:  http.StatusServiceUnavailable,
					Message: "DOWN",
					Error:   err.Error(),
				})
				return
			}
		}
		ok(c, "UP", nil)
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// xlsx уже сжат, повторно не пакуем.
	api := r.Group("/api/v1", gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".xlsx"})))

	public := api.Group("")
	{
		public.GET("/departments", h.listDepartments)
		public.POST("/appointments", h.submitAppointment)
	}

	private := api.Group("")
	private.Use(authenticate(opts.Tokens, opts.Operators))

	desk := private.Group("")
	desk.Use(requireRole(frontDesk...))
	{
		desk.GET("/appointments/pending", h.listPending)
		desk.POST("/appointments/:id/verify", h.verifyAppointment)
		desk.POST("/visits", h.registerOnSite)
		desk.GET("/visits/unpaid", h.listUnpaid)
		desk.POST("/visits/:id/settle", h.settleVisit)
		desk.GET("/doctors", h.listDoctors)
		desk.GET("/rooms", h.listRooms)
	}

	admin := private.Group("")
	admin.Use(requireRole(adminOnly...))
	{
		admin.POST("/schedules", h.assignShift)
		admin.GET("/schedules", h.listSchedule)
		admin.GET("/schedules/options", h.schedulingOptions)

		admin.GET("/reports/revenue", h.revenue)
		admin.GET("/reports/revenue.xlsx", h.revenueXLSX)

		admin.GET("/patients", h.searchPatients)

		admin.GET("/staff", h.listStaff)
		admin.POST("/staff", h.hireStaff)
		admin.GET("/staff/:id", h.getStaff)
		admin.PUT("/staff/:id", h.editStaff)
		admin.POST("/staff/:id/terminate", h.terminateStaff)
	}

	return r
}
