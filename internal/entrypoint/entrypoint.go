package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/activity"
	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/database"
	activityRepo "github.com/mrlokans/skillexchange/internal/database/activity"
	"github.com/mrlokans/skillexchange/internal/database/exchanges"
	"github.com/mrlokans/skillexchange/internal/database/skills"
	"github.com/mrlokans/skillexchange/internal/database/stats"
	"github.com/mrlokans/skillexchange/internal/database/users"
	http_controllers "github.com/mrlokans/skillexchange/internal/http"
	"github.com/mrlokans/skillexchange/internal/presence"
	"github.com/mrlokans/skillexchange/internal/scheduler"
	"github.com/mrlokans/skillexchange/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, Ctrl+C sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background workers stop after the last request has drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Skill Exchange Network v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	skillRepo := skills.NewRepository(db.DB)
	exchangeRepo := exchanges.NewRepository(db.DB)
	statsRepo := stats.NewRepository(db.DB)
	activityEvents := activityRepo.NewRepository(db.DB)

	// Task queue for activity writes and retention cleanup
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRecordActivityQueue(activityEvents),
			tasks.NewCleanupActivityQueue(activityEvents),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
	} else {
		log.Printf("Task queue disabled, activity events are written directly")
	}

	// A nil *tasks.Client must not end up inside a non-nil interface
	var queue activity.Enqueuer
	if taskClient != nil {
		queue = taskClient
	}
	activityService := activity.NewService(activityEvents, queue)

	cleanupScheduler := scheduler.NewActivityCleanupScheduler(activityEvents, queue, cfg.Activity.CleanupSchedule, cfg.Activity.RetentionDays)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := cleanupScheduler.Start(schedulerCtx); err != nil {
		log.Printf("WARNING: Activity cleanup disabled: %v", err)
	}

	tracker := presence.NewTracker(cfg.Presence.Window)
	if err := tracker.Start(cfg.Presence.SweepSchedule); err != nil {
		log.Printf("WARNING: Presence sweep disabled: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, err := loadCSRFSecret(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Profiles:         userRepo,
		Skills:           skillRepo,
		Exchanges:        exchangeRepo,
		Stats:            statsRepo,
		Database:         db,
		ActivityFeed:     activityService,
		ActivityRecorder: activityService,
		Presence:         tracker,
		ActivityCleanup:  cleanupScheduler,
		AuthService:      auth.NewService(userRepo, cfg.Auth),
		SessionManager:   sessionManager,
		AuthConfig:       cfg.Auth,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
		TemplatesPath:    cfg.UI.TemplatesPath,
		StaticPath:       cfg.UI.StaticPath,
		Version:          version,
	}

	router, stopRouter := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		stopRouter()
		tracker.Stop()
		cleanupScheduler.Stop()
		activityService.Wait()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// loadCSRFSecret decodes the configured secret, falling back to the raw
// bytes when it isn't hex. An empty value yields a fresh random secret that
// only lives as long as the process.
func loadCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}
