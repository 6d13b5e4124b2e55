package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	"github.com/BruksfildServices01/garage-booking/internal/backup"
	"github.com/BruksfildServices01/garage-booking/internal/config"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/garage-booking/internal/infra/repository"
	"github.com/BruksfildServices01/garage-booking/internal/middleware"
	"github.com/BruksfildServices01/garage-booking/internal/notify"
	"github.com/BruksfildServices01/garage-booking/internal/ratelimit"
	ucBooking "github.com/BruksfildServices01/garage-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/garage-booking/internal/usecase/catalog"
)

// Deps are the long-lived pieces main owns and shuts down.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Clock  func() time.Time

	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Notifier    ucBooking.Notifier
	Mailer      *notify.Mailer
	Limiter     ratelimit.Limiter
	Backup      *backup.Backup
	Emails      handlers.EmailChecker
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	grid, err := domain.NewGrid(cfg.BusinessHours())
	if err != nil {
		return err
	}

	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	clock := domain.Clock(d.Clock)

	limiter := d.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLocal(cfg.RateLimitPerMinute)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo, grid, clock)
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, grid, clock, d.Audit, d.Notifier)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, clock, d.Audit)
	rescheduleBookingUC := ucBooking.NewRescheduleBooking(bookingRepo, grid, clock, d.Audit, d.Notifier)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listRecentUC := ucBooking.NewListRecentBookings(bookingRepo)
	notificationsUC := ucBooking.NewGetNotifications(bookingRepo, serviceRepo, clock)

	servicesUC := ucCatalog.NewServices(serviceRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		getAvailabilityUC,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		getBookingUC,
		d.Emails,
		d.Log,
	)

	serviceHandler := handlers.NewServiceHandler(servicesUC, d.Log)

	adminHandler := handlers.NewAdminHandler(
		handlers.AdminConfig{
			JWTSecret:    cfg.JWTSecret,
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			GarageName:   cfg.GarageName,
		},
		d.DB,
		listRecentUC,
		notificationsUC,
		d.Mailer,
		d.Backup,
		d.Audit,
		d.Log,
	)

	var auditLogsHandler *handlers.AuditLogsHandler
	if d.AuditLogger != nil {
		auditLogsHandler = handlers.NewAuditLogsHandler(d.AuditLogger, d.Log)
	}

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (read)
		// ------------------------------
		api.GET("/available-times", bookingHandler.Availability)
		api.GET("/services", serviceHandler.List)
		api.POST("/service-info", serviceHandler.Info)

		// ------------------------------
		// PUBLIC (write, rate limited)
		// ------------------------------
		limited := api.Group("/")
		limited.Use(middleware.RateLimit(limiter, d.Log))
		{
			limited.POST("/book", bookingHandler.Book)
			limited.POST("/booking-status", bookingHandler.Status)
			limited.POST("/cancel-booking", bookingHandler.Cancel)
			limited.POST("/reschedule-booking", bookingHandler.Reschedule)
			limited.POST("/admin/login", adminHandler.Login)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.GET("/bookings", adminHandler.Bookings)
			admin.GET("/notifications", adminHandler.Notifications)
			admin.GET("/system-status", adminHandler.SystemStatus)
			admin.POST("/test-smtp", adminHandler.TestSMTP)
			admin.POST("/backup", adminHandler.Backup)

			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			if auditLogsHandler != nil {
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
