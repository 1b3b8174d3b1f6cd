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

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/devforge-studio/crm-backend/config"
	"github.com/devforge-studio/crm-backend/internal/bootstrap"
	"github.com/devforge-studio/crm-backend/internal/intake"
	"github.com/devforge-studio/crm-backend/internal/intake/captcha"
	"github.com/devforge-studio/crm-backend/internal/intake/mailer"
	intakehttp "github.com/devforge-studio/crm-backend/internal/intake/http"
	intakerepo "github.com/devforge-studio/crm-backend/internal/intake/repository"
	"github.com/devforge-studio/crm-backend/internal/intake/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[error] operation=startup config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("[error] operation=startup database: %v", err)
	}
	defer db.Close()
	log.Printf("[info] operation=startup database connected host=%s db=%s", cfg.Database.Host, cfg.Database.Name)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("[error] operation=startup redis: %v", err)
	}
	defer rdb.Close()
	log.Printf("[info] operation=startup redis connected addr=%s", cfg.Redis.Addr)

	files, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("[error] operation=startup upload storage: %v", err)
	}

	intakeSvc := intake.NewService(
		intakerepo.NewInquiryRepo(db),
		captcha.NewGoogle(cfg.Captcha.Secret, cfg.Captcha.VerifyURL),
		files,
		mailer.NewSMTP(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From),
		cfg.Uploads.Technologies,
		cfg.Mail.SchedulingLink,
		cfg.Uploads.MaxFileBytes,
	)

	cleanup := intake.NewCleanupScheduler(files)
	cleanup.Start()
	defer cleanup.Stop()

	// 5 submissions per minute per IP on the public intake endpoint.
	limiter := intakehttp.NewIPRateLimiter(rate.Every(12*time.Second), 5)
	defer limiter.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "crm-backend",
		Version:       cfg.App.Version,
		Cfg:           cfg,
		DB:            db,
		Redis:         rdb,
		Intake:        intakeSvc,
		IntakeLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[info] operation=startup listening port=%s env=%s", cfg.Server.Port, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[error] operation=serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[info] operation=shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown: %v", err)
	}
	log.Println("[info] operation=shutdown complete")
}
