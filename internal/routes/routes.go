package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// Dependencies são os singletons montados no main.
type Dependencies struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Log   *zap.Logger
	Cache domain.AvailabilityCache
	Audit *audit.Dispatcher
	Clock timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Cfg.AllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	deps := ucAppointment.Deps{
		Directory: infraRepo.NewDirectoryGormRepository(d.DB),
		Store:     infraRepo.NewAppointmentGormRepository(d.DB),
		Cache:     d.Cache,
		Audit:     d.Audit,
		Clock:     d.Clock,
		Log:       d.Log,
		MaxDays:   d.Cfg.MaxAvailabilityDays,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAppointment.NewGetAvailability(deps),
		d.Clock,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(deps),
		ucAppointment.NewRescheduleAppointment(deps),
		ucAppointment.NewConfirmAppointment(deps),
		ucAppointment.NewCancelAppointment(deps),
		ucAppointment.NewCompleteAppointment(deps),
		ucAppointment.NewListAppointmentsByDate(deps),
		d.Clock,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔐 API (JSON)
	// ======================================================
	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(d.Cfg))
	{
		secured.GET("/barbers/:barberID/availability", availabilityHandler.Get)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.ListByDate)
		secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
