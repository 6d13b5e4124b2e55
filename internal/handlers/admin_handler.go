package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	"github.com/BruksfildServices01/garage-booking/internal/backup"
	dbpkg "github.com/BruksfildServices01/garage-booking/internal/db"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/middleware"
	"github.com/BruksfildServices01/garage-booking/internal/notify"
	ucBooking "github.com/BruksfildServices01/garage-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminConfig struct {
	JWTSecret    string
	Username     string
	PasswordHash string
	TokenTTL     time.Duration
	GarageName   string
}

type AdminHandler struct {
	cfg AdminConfig
	db  *gorm.DB

	recent        *ucBooking.ListRecentBookings
	notifications *ucBooking.GetNotifications

	mailer *notify.Mailer
	backup *backup.Backup
	audit  *audit.Dispatcher
	log    *zap.Logger
	clock  func() time.Time
}

func NewAdminHandler(
	cfg AdminConfig,
	db *gorm.DB,
	recent *ucBooking.ListRecentBookings,
	notifications *ucBooking.GetNotifications,
	mailer *notify.Mailer,
	bk *backup.Backup,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *AdminHandler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &AdminHandler{
		cfg:           cfg,
		db:            db,
		recent:        recent,
		notifications: notifications,
		mailer:        mailer,
		backup:        bk,
		audit:         auditDispatcher,
		log:           log,
		clock:         time.Now,
	}
}

// --------- Requests ---------

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TestSMTPRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
}

// ======================================================
// LOGIN
// ======================================================

func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ongeldige gegevens.")
		return
	}

	if h.cfg.PasswordHash == "" {
		httperr.Unavailable(c, "admin_login_disabled", "Beheerderslogin is niet geconfigureerd.")
		return
	}

	userOK := strings.EqualFold(strings.TrimSpace(req.Username), h.cfg.Username)
	passErr := bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		h.log.Warn("admin login failed", zap.String("ip", c.ClientIP()))
		httperr.Unauthorized(c, "invalid_credentials", "Ongeldige gebruikersnaam of wachtwoord.")
		return
	}

	token, err := middleware.IssueAdminToken(h.cfg.JWTSecret, h.cfg.Username, h.clock(), h.cfg.TokenTTL)
	if err != nil {
		h.log.Error("sign admin token", zap.Error(err))
		httperr.Internal(c, "failed_to_generate_token", "Token kon niet worden aangemaakt.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.cfg.TokenTTL.Seconds()),
	})
}

// ======================================================
// BOOKINGS / NOTIFICATIONS
// ======================================================

func (h *AdminHandler) Bookings(c *gin.Context) {
	list, err := h.recent.Execute(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    len(list),
		"bookings": list,
	})
}

func (h *AdminHandler) Notifications(c *gin.Context) {
	n, err := h.notifications.Execute(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"new_bookings_count":    n.NewBookings,
		"total_bookings_count":  n.TotalBookings,
		"active_services_count": n.ActiveServices,
		"recent_bookings":       n.Recent,
	})
}

// ======================================================
// SYSTEM
// ======================================================

// SystemStatus reports which integrations are usable. Secrets never leave the
// process.
func (h *AdminHandler) SystemStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := dbpkg.Ping(ctx, h.db); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		dbStatus = "disconnected"
	}

	emailStatus := "invalid"
	if h.mailer != nil && h.mailer.Configured() {
		emailStatus = "valid"
	}

	backupStatus := "disabled"
	if h.backup != nil && h.backup.Configured() {
		backupStatus = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"db_status":     dbStatus,
		"db_driver":     h.db.Dialector.Name(),
		"email_status":  emailStatus,
		"backup_status": backupStatus,
	})
}

func (h *AdminHandler) TestSMTP(c *gin.Context) {
	var req TestSMTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_email", "Geldig e-mailadres is verplicht.")
		return
	}

	if h.mailer == nil || !h.mailer.Configured() {
		httperr.Unavailable(c, "mail_not_configured", "E-mail is niet geconfigureerd.")
		return
	}

	msg, err := notify.TestMessage(h.cfg.GarageName, req.ToEmail)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	if err := h.mailer.Send(c.Request.Context(), msg); err != nil {
		h.log.Warn("test mail failed", zap.Error(err))
		httperr.Write(c, http.StatusBadGateway, "mail_failed", "Test e-mail kon niet worden verzonden.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Test e-mail succesvol verzonden",
	})
}

func (h *AdminHandler) Backup(c *gin.Context) {
	if h.backup == nil || !h.backup.Configured() {
		httperr.Unavailable(c, "backup_not_configured", "Back-upopslag is niet geconfigureerd.")
		return
	}

	key, err := h.backup.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, backup.ErrNotConfigured) {
			httperr.Unavailable(c, "backup_not_configured", "Back-upopslag is niet geconfigureerd.")
			return
		}
		h.log.Error("backup failed", zap.Error(err))
		httperr.Internal(c, "backup_failed", "Back-up is mislukt.")
		return
	}

	if h.audit != nil {
		h.audit.Dispatch(audit.Event{
			Actor:    middleware.AdminName(c),
			Action:   audit.ActionBackupCreated,
			Entity:   "backup",
			Metadata: map[string]string{"key": key},
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"key":     key,
	})
}
