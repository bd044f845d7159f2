package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	casehandler "medhope/internal/cases/handler"
	casemetrics "medhope/internal/cases/metrics"
	caseservice "medhope/internal/cases/service"
	"medhope/internal/cases/store/casestore"
	"medhope/internal/cases/store/sequence"
	fundinghandler "medhope/internal/funding/handler"
	fundingmetrics "medhope/internal/funding/metrics"
	"medhope/internal/funding/payment"
	fundingservice "medhope/internal/funding/service"
	"medhope/internal/funding/store/donation"
	identityservice "medhope/internal/identity/service"
	"medhope/internal/identity/store/user"
	"medhope/internal/identity/token"
	"medhope/internal/platform/config"
	"medhope/internal/platform/httpserver"
	"medhope/internal/platform/logger"
	"medhope/internal/platform/metrics"
	"medhope/internal/platform/postgres"
	"medhope/internal/platform/redis"
	"medhope/internal/priority"
	httptransport "medhope/internal/transport/http"
	"medhope/migrations"
	id "medhope/pkg/domain"
	audit "medhope/pkg/platform/audit"
	auditpublisher "medhope/pkg/platform/audit/publisher"
	auditkafka "medhope/pkg/platform/audit/store/kafka"
	auditmemory "medhope/pkg/platform/audit/store/memory"
	auditpostgres "medhope/pkg/platform/audit/store/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)
	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set MEDHOPE_AUTH_JWT_SIGNING_KEY in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// caseRepository is the case store as shared by the lifecycle and the ledger.
type caseRepository interface {
	caseservice.CaseStore
	fundingservice.CaseLedger
}

type infra struct {
	db       *sql.DB
	redis    *redis.Client
	kafka    *auditkafka.Store
	auditLog *auditpublisher.Publisher
}

func (i *infra) close(log *slog.Logger) {
	if i.auditLog != nil {
		if err := i.auditLog.Close(); err != nil {
			log.Warn("audit publisher close failed", "error", err)
		}
	}
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Warn("redis close failed", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Warn("database close failed", "error", err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	res := &infra{}
	defer res.close(log)

	var (
		caseStore     caseRepository
		donationStore fundingservice.DonationStore
		userStore     identityservice.UserStore
		seq           caseservice.SequenceAllocator
		caseTx        caseservice.StoreTx
		fundingTx     fundingservice.StoreTx
		auditHistory  auditHistoryStore
		health        = map[string]httptransport.HealthCheck{}
	)

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		res.db = db
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.URL, migrations.FS); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		txRunner := postgres.NewTxRunner(db, cfg.Database.TxTimeout)
		caseStore = casestore.NewPostgres(db)
		donationStore = donation.NewPostgres(db)
		userStore = user.NewPostgres(db)
		seq = sequence.NewPostgres(db)
		caseTx, fundingTx = txRunner, txRunner
		auditHistory = auditpostgres.New(db)
		health["database"] = db.PingContext
		log.Info("using postgres stores")
	} else {
		caseStore = casestore.NewInMemoryStore()
		donationStore = donation.NewInMemoryStore()
		userStore = user.NewInMemoryStore()
		seq = sequence.NewInMemory()
		auditHistory = auditmemory.NewInMemoryStore()
		log.Warn("database.url is empty; using in-memory stores")
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		res.redis = redisClient
		seq = sequence.NewRedis(redisClient)
		health["redis"] = redisClient.Health
	}

	auditStore, err := newAuditStore(ctx, cfg.Kafka, auditHistory, res, health)
	if err != nil {
		return err
	}
	res.auditLog = auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithAsyncBuffer(cfg.Kafka.BufferSize),
		auditpublisher.WithLogger(log),
	)

	identities, err := identityservice.New(userStore,
		token.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
		identityservice.WithLogger(log),
		identityservice.WithTokenTTL(cfg.Auth.TokenTTL),
	)
	if err != nil {
		return err
	}

	caseOpts := []caseservice.Option{
		caseservice.WithLogger(log),
		caseservice.WithAuditPublisher(res.auditLog),
		caseservice.WithMetrics(casemetrics.New()),
	}
	if caseTx != nil {
		caseOpts = append(caseOpts, caseservice.WithTx(caseTx))
	}
	cases, err := caseservice.New(caseStore, seq, priority.NewDefaultClassifier(), identities, caseOpts...)
	if err != nil {
		return err
	}

	fundingOpts := []fundingservice.Option{
		fundingservice.WithLogger(log),
		fundingservice.WithAuditPublisher(res.auditLog),
		fundingservice.WithMetrics(fundingmetrics.New()),
	}
	if fundingTx != nil {
		fundingOpts = append(fundingOpts, fundingservice.WithTx(fundingTx))
	}
	funding, err := fundingservice.New(caseStore, donationStore, payment.New(cfg.Payment.Mode), fundingOpts...)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Options{
		Logger:         log,
		Metrics:        metrics.New(),
		Authenticator:  identities,
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthChecks:   health,
		Handlers: []httptransport.Registrar{
			casehandler.New(cases, res.auditLog, log),
			fundinghandler.New(funding, log),
		},
	})

	srv := httpserver.New(cfg.Server, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting medhope", "addr", cfg.Server.Addr, "payment_mode", cfg.Payment.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// auditHistoryStore records events and serves them back to the audit endpoint.
type auditHistoryStore interface {
	audit.Store
	audit.Reader
}

// newAuditStore writes every event to history and, when brokers are
// configured, forwards it to Kafka as well.
func newAuditStore(ctx context.Context, cfg config.KafkaConfig, history auditHistoryStore, res *infra, health map[string]httptransport.HealthCheck) (audit.Store, error) {
	if len(cfg.Brokers) == 0 {
		return history, nil
	}
	sink, err := auditkafka.New(cfg.Brokers, cfg.AuditTopic)
	if err != nil {
		return nil, err
	}
	res.kafka = sink
	if err := sink.EnsureTopic(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		return nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	health["kafka"] = sink.Ping
	return teeStore{history: history, sink: sink}, nil
}

type teeStore struct {
	history auditHistoryStore
	sink    audit.Store
}

func (t teeStore) Append(ctx context.Context, event audit.Event) error {
	if err := t.history.Append(ctx, event); err != nil {
		return err
	}
	return t.sink.Append(ctx, event)
}

func (t teeStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]audit.Event, error) {
	return t.history.ListByCase(ctx, caseID)
}
