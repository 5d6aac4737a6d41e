package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sgwessen/kalender/external/clubfile"
	"github.com/sgwessen/kalender/external/dsv"
	"github.com/sgwessen/kalender/internal/config"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/domain/event"
	"github.com/sgwessen/kalender/internal/domain/fixture"
	"github.com/sgwessen/kalender/internal/infrastructure/repository/sqlstore"
	"github.com/sgwessen/kalender/internal/interfaces/ical"
	"github.com/sgwessen/kalender/internal/platform/logging"
	"github.com/sgwessen/kalender/internal/platform/resilience"
	"github.com/sgwessen/kalender/internal/usecase"
)

// App is the composition root shared by all CLI commands. Construction wires
// the store, the source adapters and the services; Close releases the store.
type App struct {
	Config config.Config
	Logger *logging.Logger

	DB       *sqlx.DB
	Fixtures fixture.Repository
	Events   event.Repository

	Reconciler *usecase.ReconcileService
	Sync       *usecase.SyncService
	Schedule   *usecase.ScheduleService
	Publisher  *ical.Publisher
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	fixtures := sqlstore.NewFixtureRepository(db)
	events := sqlstore.NewEventRepository(db)

	dsvClient := dsv.NewClient(dsv.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.DSVTimeout},
		BaseURL:    cfg.DSVBaseURL,
		ClubName:   cfg.DSVClubName,
		Timeout:    cfg.DSVTimeout,
		MaxRetries: cfg.DSVMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.DSVCircuitEnabled,
			FailureThreshold: cfg.DSVCircuitFailureCount,
			OpenTimeout:      cfg.DSVCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DSVCircuitHalfOpenMaxReq,
		},
	})
	clubEvents := clubfile.NewSource(cfg.ClubEventsPath, logger)

	sources := map[string]usecase.CandidateSource{
		competition.SourceDSV:  dsvClient,
		competition.SourceFile: clubEvents,
	}

	reconciler := usecase.NewReconcileService(fixtures, events, dsvClient, logger)
	schedule := usecase.NewScheduleService(fixtures, events, logger)
	sync := usecase.NewSyncService(cfg.Competitions, sources, reconciler, logger)

	publisher := ical.NewPublisher(schedule, ical.Options{
		Name:        cfg.CalendarName,
		Description: cfg.CalendarDescription,
		Timezone:    cfg.CalendarTimezone,
	}, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Fixtures:   fixtures,
		Events:     events,
		Reconciler: reconciler,
		Sync:       sync,
		Schedule:   schedule,
		Publisher:  publisher,
	}, nil
}

// Close releases the store connection. Safe to call on a partially built app.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
