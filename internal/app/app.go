package app

import (
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"github.com/nbanima/pickem/internal/config"
	"github.com/nbanima/pickem/internal/domain/account"
	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/infrastructure/jobqueue"
	"github.com/nbanima/pickem/internal/infrastructure/provider/balldontlie"
	"github.com/nbanima/pickem/internal/infrastructure/repository/memory"
	"github.com/nbanima/pickem/internal/infrastructure/repository/postgres"
	"github.com/nbanima/pickem/internal/interfaces/httpapi"
	"github.com/nbanima/pickem/internal/platform/cache"
	"github.com/nbanima/pickem/internal/platform/logging"
	"github.com/nbanima/pickem/internal/usecase"
)

type repositories struct {
	picks    picks.Repository
	results  results.Repository
	schedule schedule.Repository
	ledger   ledger.Repository
	accounts account.Repository
}

// NewHTTPServer wires storage, services, and the HTTP surface. With DB_URL
// set it runs on postgres; without it the process is self-contained on
// seeded memory repositories.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, slogger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if slogger == nil {
		slogger = slog.Default()
	}

	repos, err := buildRepositories(cfg, slogger)
	if err != nil {
		return nil, err
	}

	var provider usecase.SlateProvider
	if cfg.BallDontLieEnabled {
		provider = balldontlie.NewClient(balldontlie.ClientConfig{
			BaseURL:        cfg.BallDontLieBaseURL,
			APIKey:         cfg.BallDontLieAPIKey,
			Timeout:        cfg.BallDontLieTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.BallDontLieCircuit,
		})
	}

	var queue usecase.SettlementQueue
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			SettleDelay:      cfg.QStashSettleDelay,
			CircuitBreaker:   cfg.QStashCircuit,
		}, slogger)
	}

	var totalsCache *cache.Store
	if cfg.CacheEnabled {
		totalsCache = cache.NewStore(cfg.CacheTTL)
	}

	settlementSvc := usecase.NewSettlementService(repos.picks, repos.results, repos.ledger, repos.accounts, logger)
	weeklySvc := usecase.NewWeeklyService(repos.ledger, repos.accounts, repos.schedule, totalsCache, cfg.SlateLockBuffer, logger)
	ingestionSvc := usecase.NewIngestionService(provider, repos.schedule, repos.results, queue, logger)

	handler := httpapi.NewHandler(settlementSvc, weeklySvc, ingestionSvc, slogger)
	router := httpapi.NewRouter(handler, slogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, slogger *slog.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		slogger.Info("storage backend", "kind", "memory", "reason", "DB_URL empty")
		accountRepo := memory.NewAccountRepository(memory.SeedAccounts())
		return repositories{
			picks:    memory.NewPicksRepository(memory.SeedPicks()),
			results:  memory.NewResultsRepository(),
			schedule: memory.NewScheduleRepository(memory.SeedGames()),
			ledger:   memory.NewLedgerRepository(accountRepo),
			accounts: accountRepo,
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	slogger.Info("storage backend", "kind", "postgres", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		picks:    postgres.NewPicksRepository(db),
		results:  postgres.NewResultsRepository(db),
		schedule: postgres.NewScheduleRepository(db),
		ledger:   postgres.NewLedgerRepository(db),
		accounts: postgres.NewAccountRepository(db),
	}, nil
}
