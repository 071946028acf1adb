package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agisfl/agisfl/internal/api/handlers"
	"github.com/agisfl/agisfl/internal/api/router"
	"github.com/agisfl/agisfl/internal/config"
	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/integrations"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/validator"
	"github.com/agisfl/agisfl/internal/repository/memory"
	"github.com/agisfl/agisfl/internal/repository/sqlite"
	"github.com/agisfl/agisfl/internal/services"
	"github.com/agisfl/agisfl/internal/simulator"
	"github.com/agisfl/agisfl/internal/worker"
	"github.com/agisfl/agisfl/migrations"
)

type repositories struct {
	incidents   incident.Repository
	threats     threat.Repository
	metrics     sysmetric.Repository
	insights    insight.Repository
	attackPaths attackpath.Repository
	users       user.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if err := run(cfg, log); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, pinger, cleanup, err := buildRepositories(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	val := validator.New()
	narrator := integrations.NewNarrator(cfg.OpenAI.APIKey)

	incidentSvc := services.NewIncidentService(repos.incidents, log)
	threatSvc := services.NewThreatService(repos.threats, log)
	metricSvc := services.NewSysMetricService(repos.metrics, log)
	insightSvc := services.NewInsightService(repos.insights, narrator, log)
	attackPathSvc := services.NewAttackPathService(repos.attackPaths, log)
	userSvc := services.NewUserService(repos.users, cfg.Auth.BCryptCost, log)

	if cfg.Auth.DemoMode {
		seedDemoUsers(ctx, userSvc, log)
	}

	monitor := simulator.NewSystemMonitor(cfg.Simulator.MonitorInterval, log)
	coordinator := simulator.NewFLCoordinator(cfg.Simulator.DetectorInterval, nil, log)

	hub := handlers.NewHub(handlers.SnapshotSources{
		Incidents:   incidentSvc,
		Threats:     threatSvc,
		Metrics:     metricSvc,
		Insights:    insightSvc,
		Coordinator: coordinator,
		Monitor:     monitor,
	}, cfg.Simulator.BroadcastInterval, 30*time.Second, log)
	coordinator.SetPublisher(hub)

	profiles, err := simulator.LoadProfiles(cfg.Simulator.ProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load attack profiles: %w", err)
	}

	generator := simulator.NewMetricsGenerator(metricSvc, cfg.Simulator.MetricsInterval, log)
	detector := simulator.NewThreatDetector(
		threatSvc, incidentSvc, insightSvc, hub, profiles, cfg.Simulator.DetectorInterval, log,
	)

	sweeper := worker.NewRetentionSweeper(
		repos.metrics, repos.threats,
		cfg.Retention.Schedule, cfg.Retention.MetricsMaxAge, cfg.Retention.ThreatsMaxAge,
		log,
	)

	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(pinger, log),
		Auth:       handlers.NewAuthHandler(userSvc, cfg, log, val),
		Incident:   handlers.NewIncidentHandler(incidentSvc, log, val),
		Threat:     handlers.NewThreatHandler(threatSvc, log, val),
		System:     handlers.NewSystemHandler(metricSvc, monitor, log),
		Insight:    handlers.NewInsightHandler(insightSvc, log),
		AttackPath: handlers.NewAttackPathHandler(attackPathSvc, log),
		Dashboard:  handlers.NewDashboardHandler(incidentSvc, threatSvc, detector, monitor, log),
		FL:         handlers.NewFLHandler(coordinator, log),
		WS:         handlers.NewWSHandler(hub, incidentSvc, threatSvc, coordinator, log),
	}

	go hub.Run(ctx)
	go monitor.Start(ctx)
	go coordinator.Start(ctx)
	if cfg.Simulator.Enabled {
		go generator.Start(ctx)
		go detector.Start(ctx)
	}
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start retention sweeper: %w", err)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":      srv.Addr,
			"db_driver": cfg.Database.Driver,
			"demo_mode": cfg.Auth.DemoMode,
		}).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildRepositories wires the configured storage driver. The memory
// driver is a deliberate choice for throwaway demo deployments, never a
// fallback for storage failures.
func buildRepositories(cfg *config.Config, log *logger.Logger) (*repositories, handlers.Pinger, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("Using in-memory storage; all data is lost on restart")
		return &repositories{
			incidents:   memory.NewIncidentRepository(),
			threats:     memory.NewThreatRepository(),
			metrics:     memory.NewSysMetricRepository(),
			insights:    memory.NewInsightRepository(),
			attackPaths: memory.NewAttackPathRepository(),
			users:       memory.NewUserRepository(),
		}, handlers.NopPinger{}, func() {}, nil
	}

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlite.RunMigrations(db, migrations.GetFS()); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &repositories{
		incidents:   sqlite.NewIncidentRepository(db),
		threats:     sqlite.NewThreatRepository(db),
		metrics:     sqlite.NewSysMetricRepository(db),
		insights:    sqlite.NewInsightRepository(db),
		attackPaths: sqlite.NewAttackPathRepository(db),
		users:       sqlite.NewUserRepository(db),
	}, db, func() { closeDB(db, log) }, nil
}

func closeDB(db *sql.DB, log *logger.Logger) {
	if err := db.Close(); err != nil {
		log.ErrorWithErr(err, "Failed to close database")
	}
}

// seedDemoUsers creates the well-known demo accounts. Existing accounts
// are left untouched.
func seedDemoUsers(ctx context.Context, userSvc user.Service, log *logger.Logger) {
	seeds := []struct {
		email, username, password, role string
	}{
		{"admin@agisfl.local", "admin", "admin123", user.RoleAdmin},
		{"analyst@agisfl.local", "analyst", "analyst123", user.RoleAnalyst},
		{"viewer@agisfl.local", "viewer", "viewer123", user.RoleViewer},
	}

	for _, s := range seeds {
		if _, err := userSvc.Register(ctx, s.email, s.username, s.password, s.role); err != nil {
			log.WithFields(map[string]interface{}{
				"email": s.email,
			}).Debug("Demo user already present")
		}
	}
}
