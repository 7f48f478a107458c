package main

import (
	"context"
	"fmt"
	"time"

	"SmartCare360/audit"
	"SmartCare360/chatbot"
	"SmartCare360/config"
	"SmartCare360/controllers"
	"SmartCare360/jobs"
	"SmartCare360/logger"
	"SmartCare360/metrics"
	"SmartCare360/migrations"
	"SmartCare360/services"
	"SmartCare360/store"
	"SmartCare360/store/mongostore"
	"SmartCare360/store/postgres"

	"github.com/redis/go-redis/v9"
)

// app is the wired process: the stores, the services on top of them and the
// handlers that expose them.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   store.Store
	drafts  chatbot.DraftStore
	chain   *audit.ChainSink
	redis   *redis.Client
	metrics *metrics.Collector
	ctl     *controllers.Controller
}

var openStore = func(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		return mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	default:
		return postgres.Open(ctx, cfg.DatabaseURL, log)
	}
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, store: st, metrics: metrics.NewCollector()}

	switch cfg.DraftStore {
	case config.DraftStoreRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.drafts = chatbot.NewRedisStore(a.redis, cfg.DraftTTL)
	default:
		a.drafts = chatbot.NewMemoryStore(cfg.DraftTTL)
	}

	var sink store.AuditStore = st
	if cfg.AuditSink == config.AuditSinkLevelDB {
		if a.chain, err = audit.OpenChain(cfg.AuditLevelDBPath); err != nil {
			a.close()
			return nil, err
		}
		sink = a.chain
	}
	recorder := audit.NewRecorder(sink, log)

	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer)
	authSvc, err := services.NewAuthService(st, tokens, recorder, services.AuthConfig{
		BcryptCost:       cfg.BcryptCost,
		SelfRegistration: cfg.SelfRegistration,
	}, log)
	if err != nil {
		a.close()
		return nil, err
	}
	appointments := services.NewAppointmentService(st, recorder, log)
	chat := services.NewChatService(st, a.drafts, appointments, log)
	chat.ObserveBookings(a.metrics.RecordChatBooking)

	a.ctl = controllers.New(controllers.Deps{
		Auth:          authSvc,
		Appointments:  appointments,
		Prescriptions: services.NewPrescriptionService(st, recorder),
		Users:         services.NewUserService(st, recorder),
		Stats:         services.NewStatsService(st, st),
		Chat:          chat,
		Metrics:       a.metrics,
		Log:           log,
		SecureCookie:  !cfg.IsDevelopment(),
	})
	return a, nil
}

/*
* migrate brings the configured store up to date
* Demo users are seeded afterwards when enabled
 */
func (a *app) migrate(ctx context.Context) error {
	switch s := a.store.(type) {
	case *postgres.Store:
		if err := migrations.CreatePostgresSchema(ctx, s.DB()); err != nil {
			return err
		}
	case *mongostore.Store:
		if err := migrations.EnsureMongoIndexes(ctx, s.Database()); err != nil {
			return err
		}
	}
	if a.cfg.SeedDemoUsers {
		return migrations.SeedDemoUsers(ctx, a.store, a.cfg.BcryptCost)
	}
	return nil
}

// startJobs only schedules the sweep for the in-memory draft store; redis
// expires drafts itself.
func (a *app) startJobs() {
	mem, ok := a.drafts.(*chatbot.MemoryStore)
	if !ok {
		return
	}
	if _, err := jobs.StartDraftSweeper(mem, a.metrics, a.log); err != nil {
		a.log.WithComponent("jobs").WithError(err).Error("Failed to schedule chat draft sweeper")
	}
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.chain != nil {
		_ = a.chain.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.store != nil {
		_ = a.store.Close(ctx)
	}
}
