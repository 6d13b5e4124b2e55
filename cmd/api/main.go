package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	"github.com/BruksfildServices01/garage-booking/internal/backup"
	"github.com/BruksfildServices01/garage-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/garage-booking/internal/db"
	infraRepo "github.com/BruksfildServices01/garage-booking/internal/infra/repository"
	"github.com/BruksfildServices01/garage-booking/internal/logger"
	"github.com/BruksfildServices01/garage-booking/internal/notify"
	"github.com/BruksfildServices01/garage-booking/internal/ratelimit"
	"github.com/BruksfildServices01/garage-booking/internal/routes"
	"github.com/BruksfildServices01/garage-booking/internal/timezone"
	"github.com/BruksfildServices01/garage-booking/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		return err
	}

	seeded, err := infraRepo.NewServiceGormRepository(db).SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if seeded > 0 {
		zlog.Info("default services seeded", zap.Int("count", seeded))
	}

	clock := timezone.Clock(cfg.Timezone)

	// ---------- Audit ----------
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog)
	defer auditDispatcher.Close()

	// ---------- Mail ----------
	mailerCfg, err := cfg.MailerConfig()
	if err != nil {
		return err
	}
	mailer := notify.NewMailer(mailerCfg, zlog)
	if !mailer.Configured() {
		zlog.Warn("smtp credentials missing, booking e-mails are disabled")
	}
	mails := notify.NewDispatcher(mailer, cfg.GarageName, cfg.AdminEmail, zlog)
	defer mails.Close()

	// ---------- Rate limit ----------
	var limiter ratelimit.Limiter = ratelimit.NewLocal(cfg.RateLimitPerMinute)
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedisFromURL(ctx, cfg.RedisURL, cfg.RateLimitPerMinute)
		if err != nil {
			zlog.Warn("redis unavailable, using in-process rate limit", zap.Error(err))
		} else {
			defer rl.Close() //nolint:errcheck
			limiter = rl
		}
	}

	// ---------- Backup ----------
	var store backup.Store
	if cfg.S3Configured() {
		s3Store, err := backup.NewS3Store(backup.S3Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.AWSAccessKeyID,
			SecretKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return err
		}
		store = s3Store
	}

	deps := routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         zlog,
		Clock:       clock,
		AuditLogger: auditLogger,
		Audit:       auditDispatcher,
		Notifier:    mails,
		Mailer:      mailer,
		Limiter:     limiter,
		Backup:      backup.New(db, store, clock),
	}
	if cfg.VerifyEmailDomain {
		deps.Emails = validators.NewEmailDomain(nil)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, deps); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
