package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-scientist/brandson/app/configs"
	"github.com/de-scientist/brandson/app/events"
	"github.com/de-scientist/brandson/app/models/migrations"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/routes"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/de-scientist/brandson/app/utils/sessions"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func serveAction(ctx context.Context, c *cli.Command) error {
	cfg, log, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := configs.OpenConnection(cfg, log)
	if err != nil {
		return err
	}
	if err := migrations.AutoMigrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store, closeStore, err := newCartStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeStore()

	keys, err := configs.LoadSessionKeys(cfg)
	if err != nil {
		return err
	}

	publisher := newOrderPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("closing order publisher", zap.Error(err))
		}
	}()

	products := repositories.NewProductRepository(db)
	carts := services.NewCartService(store, products, log)
	checkout := services.NewCheckoutService(carts, newPaymentGateway(cfg, log), publisher, newNotifier(cfg, log), log)

	handler := routes.NewRouter(routes.Dependencies{
		DB:            sqlDB,
		Products:      products,
		Carts:         carts,
		Checkout:      checkout,
		Sessions:      sessions.NewCookieSessionStore(cfg.IsProduction(), cfg.CartTTL, keys.AuthKey, keys.EncKey),
		Render:        renderer.New(!cfg.IsProduction()),
		Logger:        log,
		CSRFKey:       keys.CSRFKey,
		SecureCookies: cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newCartStore(ctx context.Context, cfg *configs.Config, db *gorm.DB, log *zap.Logger) (repositories.CartStore, func(), error) {
	switch cfg.CartStore {
	case "redis":
		client, err := configs.ConnectRedis(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisCartStore(client, cfg.CartTTL), func() { client.Close() }, nil
	case "memory":
		log.Warn("carts are kept in memory and are lost on restart")
		return repositories.NewMemoryCartStore(), func() {}, nil
	default:
		return repositories.NewGormCartStore(db), func() {}, nil
	}
}

func newPaymentGateway(cfg *configs.Config, log *zap.Logger) services.PaymentGateway {
	if !cfg.MidtransEnabled() {
		log.Warn("MIDTRANS_SERVER_KEY not set, payments are recorded as manual")
		return services.NoopGateway{}
	}
	return services.NewMidtransGateway(configs.NewSnapClient(cfg), cfg.AppURL, log)
}

func newOrderPublisher(cfg *configs.Config, log *zap.Logger) events.OrderPublisher {
	if cfg.KafkaBrokers == "" {
		return events.NoopOrderPublisher{}
	}
	return events.NewKafkaOrderPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
}

func newNotifier(cfg *configs.Config, log *zap.Logger) services.OrderNotifier {
	if cfg.EmailHost == "" {
		log.Info("EMAIL_HOST not set, order confirmations are disabled")
		return nil
	}
	return services.NewMailer(services.MailerConfig{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUsername,
		Password: cfg.EmailPassword,
		From:     cfg.EmailFrom,
	})
}
