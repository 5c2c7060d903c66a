// Одноразовый прогон сидера каталога без очереди: выгребает Rakuten,
// сэмплирует и заливает вина в Postgres. Удобен для первого наполнения.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"winedeck/internal/config"
	"winedeck/internal/domain/service/catalog"
	"winedeck/internal/infrastructure/persistence"
	"winedeck/internal/infrastructure/rakuten"
	"winedeck/pkg/application/connectors"
)

func main() {
	target := flag.Int("target", 0, "итоговый размер выборки (0 — по умолчанию)")
	keywords := flag.String("keywords", "", "ключевые слова через запятую")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(log)

	if err := run(ctx, *target, *keywords); err != nil {
		log.Error("seeder failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, target int, keywords string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	wineRepo := persistence.NewWineRepository(db)

	catalogService := catalog.NewService(wineRepo, rakuten.NewClient(cfg.Rakuten))

	params := catalog.SeedParams{Target: target}
	if keywords != "" {
		params.Keywords = strings.Split(keywords, ",")
	}

	result, err := catalogService.Seed(ctx, params)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "seed finished",
		"collected", result.Collected,
		"sampled", result.Sampled,
		"upserted", result.Upserted,
		"errors", result.Errors,
	)

	return nil
}
