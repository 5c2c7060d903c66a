// Package application собирает все зависимости и запускает модули сервиса.
package application

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"winedeck/internal/config"
	"winedeck/internal/domain/service/catalog"
	"winedeck/internal/domain/service/deck"
	"winedeck/internal/domain/service/title"
	"winedeck/internal/infrastructure/notifier"
	"winedeck/internal/infrastructure/persistence"
	"winedeck/internal/infrastructure/rakuten"
	"winedeck/internal/server"
	"winedeck/internal/transport/bot"
	"winedeck/internal/transport/bot/handler"
	"winedeck/internal/worker"
	"winedeck/pkg/application/connectors"
	"winedeck/pkg/application/modules"
	"winedeck/pkg/logx"
	"winedeck/pkg/middlewarex"
)

const (
	appName = "winedeck"

	logFieldMaxLen = 2048
)

// Run поднимает приложение целиком: HTTP API, пробы, метрики и воркер
// сидера. Блокируется до отмены контекста.
func Run(ctx context.Context, version string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rd := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	wineRepo := persistence.NewWineRepository(db)

	deckService := deck.NewService(wineRepo, title.NewNormalizer())

	rakutenClient := rakuten.NewClient(cfg.Rakuten)
	catalogService := catalog.NewService(wineRepo, rakutenClient)

	seeder := worker.NewSeeder(catalogService, redisClient)

	if cfg.Bot.NotificationsEnabled() {
		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		seeder = seeder.WithNotifier(alertBot)
	}

	enqueuer := worker.NewEnqueuer(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer enqueuer.Close() //nolint:errcheck

	apiServer := server.NewServer(
		server.NewWineServer(deckService),
		server.NewCatalogServer(enqueuer, seeder),
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:        cfg.Server.HTTPAddress,
		Handler:     newRouter(apiServer),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       version,
		ListenAddress: cfg.Server.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Server.MetricAddress}.Run(ctx, g)

	modules.AsynqServer{
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueDefault: 1},
		modules.AsynqHandler{Pattern: worker.TaskCatalogSeed, Handle: seeder.HandleSeedTask},
	)

	if cfg.Bot.AdminEnabled() {
		adminBot, err := bot.New(ctx, cfg.Bot.Token, cfg.Bot.AdminID, handler.New(enqueuer, seeder, catalogService))
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error {
			if err := adminBot.Run(ctx); err != nil && ctx.Err() == nil {
				return fmt.Errorf("adminBot.Run: %w", err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newRouter(s server.Server) chi.Router {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
