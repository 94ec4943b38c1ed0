package routes

import (
	"context"
	"fmt"

	"artisan_escrow/internal/adapter/persistence/journal"
	"artisan_escrow/internal/adapter/persistence/memory"
	"artisan_escrow/internal/adapter/persistence/repository"
	"artisan_escrow/internal/config"
	"artisan_escrow/internal/infrastructure/database"
	"artisan_escrow/internal/infrastructure/lock"
	"artisan_escrow/internal/infrastructure/notifications"
	"artisan_escrow/internal/infrastructure/payments"
	"artisan_escrow/internal/usecase"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type wiring struct {
	ctx     context.Context
	cfg     *config.Config
	log     *zap.Logger
	rdb     *redis.Client
	closers []func()
}

// buildDeps selects storage, locking, notification, journal and payment
// backends from cfg.
func buildDeps(ctx context.Context, cfg *config.Config, log *zap.Logger) (usecase.Deps, func(), error) {
	w := &wiring{ctx: ctx, cfg: cfg, log: log}
	closeAll := func() {
		for i := len(w.closers) - 1; i >= 0; i-- {
			w.closers[i]()
		}
	}

	deps := usecase.Deps{
		Fees:           cfg.Fees,
		QuoteWindow:    cfg.Projects.QuoteWindow,
		PaymentTimeout: cfg.Payment.Timeout,
		Logger:         log,
	}

	steps := []func(*usecase.Deps) error{
		w.storage,
		w.locker,
		w.notifier,
		w.journal,
		w.gateway,
	}
	for _, step := range steps {
		if err := step(&deps); err != nil {
			closeAll()
			return usecase.Deps{}, nil, err
		}
	}
	return deps, closeAll, nil
}

func (w *wiring) redis() (*redis.Client, error) {
	if w.rdb != nil {
		return w.rdb, nil
	}
	rdb, err := database.NewRedis(w.ctx, w.cfg.Redis)
	if err != nil {
		return nil, err
	}
	w.rdb = rdb
	w.closers = append(w.closers, func() { _ = rdb.Close() })
	return rdb, nil
}

func (w *wiring) storage(d *usecase.Deps) error {
	if w.cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		d.Projects = store.Projects()
		d.Quotes = store.Quotes()
		d.Escrows = store.Escrows()
		d.Tx = store.Transactions()
		w.log.Warn("using in-memory storage, data is lost on restart")
		return nil
	}

	ddb, err := database.ConnectDynamoDB(w.ctx, w.cfg.Storage)
	if err != nil {
		return fmt.Errorf("connect dynamodb: %w", err)
	}
	projects := repository.NewProjectDynamoRepository(ddb, w.cfg.Storage)
	quotes := repository.NewQuoteDynamoRepository(ddb, w.cfg.Storage)
	escrows := repository.NewEscrowDynamoRepository(ddb, w.cfg.Storage)
	d.Projects = projects
	d.Quotes = quotes
	d.Escrows = escrows
	d.Tx = repository.NewTransactionDynamoRepository(ddb, projects, quotes, escrows)
	return nil
}

func (w *wiring) locker(d *usecase.Deps) error {
	if w.cfg.Lock.Driver != config.LockRedis {
		d.Locker = lock.NewLocalLocker(w.cfg.Lock.Wait)
		return nil
	}
	rdb, err := w.redis()
	if err != nil {
		return fmt.Errorf("redis lock: %w", err)
	}
	d.Locker = lock.NewRedisLocker(rdb, w.cfg.Lock.TTL, w.cfg.Lock.Wait, w.log)
	return nil
}

func (w *wiring) notifier(d *usecase.Deps) error {
	switch w.cfg.Notifier.Driver {
	case config.NotifierSNS:
		awsCfg, err := database.NewAWSConfig(w.ctx, w.cfg.Storage)
		if err != nil {
			return fmt.Errorf("sns config: %w", err)
		}
		d.Notifier = notifications.NewSNSNotifier(sns.NewFromConfig(awsCfg), w.cfg.Notifier.SNSTopicARN)
	case config.NotifierRedis:
		rdb, err := w.redis()
		if err != nil {
			return fmt.Errorf("redis notifier: %w", err)
		}
		d.Notifier = notifications.NewRedisNotifier(rdb, w.cfg.Notifier.Channel)
	default:
		d.Notifier = notifications.NewLogNotifier(w.log)
	}
	return nil
}

func (w *wiring) journal(d *usecase.Deps) error {
	if w.cfg.Journal.DSN == "" {
		d.Journal = journal.NewMemoryJournal()
		return nil
	}
	db, err := database.ConnectPostgres(w.ctx, w.cfg.Journal.DSN)
	if err != nil {
		return fmt.Errorf("ledger journal: %w", err)
	}
	w.closers = append(w.closers, func() { _ = db.Close() })
	pj := journal.NewPostgresJournal(db)
	if err := pj.EnsureSchema(w.ctx); err != nil {
		return fmt.Errorf("ledger journal schema: %w", err)
	}
	d.Journal = pj
	return nil
}

func (w *wiring) gateway(d *usecase.Deps) error {
	var gw interfaces.IPaymentGateway
	if w.cfg.Payment.Mock || w.cfg.Payment.MercadoPagoAccessToken == "" {
		w.log.Info("using simulated payment gateway",
			zap.Float64("success_rate", w.cfg.Payment.SimulatedSuccessRate))
		gw = payments.NewSimulatedGateway(w.cfg.Payment, w.log)
	} else {
		mp, err := payments.NewMercadoPagoGateway(w.cfg.Payment.MercadoPagoAccessToken, w.log)
		if err != nil {
			return fmt.Errorf("mercado pago gateway: %w", err)
		}
		gw = mp
	}
	d.Gateway = payments.NewRateLimitedGateway(gw, w.cfg.Payment.RateLimit, w.cfg.Payment.RateBurst)
	return nil
}
