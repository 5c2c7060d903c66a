// Package worker фоновый прогон сидера каталога через asynq.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"winedeck/internal/domain"
	"winedeck/internal/domain/service/catalog"
	"winedeck/pkg/contextx"
	"winedeck/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	// TaskCatalogSeed имя задачи asynq.
	TaskCatalogSeed = "catalog:seed"

	// QueueDefault очередь сидера.
	QueueDefault = "default"

	statusKey = "winedeck:seed:status"
	statusTTL = 7 * 24 * time.Hour

	// uniqueWindow окно, в котором вторая задача сидера не ставится.
	uniqueWindow = time.Hour

	seedTimeout = 30 * time.Minute
)

// SeedTaskPayload параметры задачи; нулевые — значения по умолчанию.
type SeedTaskPayload struct {
	Target   int      `json:"target,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// SeedStatus статус последнего прогона, хранится в Redis.
type SeedStatus struct {
	State      string             `json:"state"` // idle | running | done | failed
	Result     catalog.SeedResult `json:"result"`
	Error      string             `json:"error,omitempty"`
	FinishedAt time.Time          `json:"finished_at"`
}

type seedNotifier interface {
	SendSeedReport(ctx context.Context, result catalog.SeedResult) error
}

// Seeder обработчик задачи catalog:seed.
type Seeder struct {
	catalogService *catalog.Service
	redisClient    *redis.Client
	notifier       seedNotifier
}

func NewSeeder(catalogService *catalog.Service, redisClient *redis.Client) *Seeder {
	return &Seeder{
		catalogService: catalogService,
		redisClient:    redisClient,
	}
}

// WithNotifier подключает отчёты о прогонах (опционально).
func (s *Seeder) WithNotifier(notifier seedNotifier) *Seeder {
	s.notifier = notifier
	return s
}

// HandleSeedTask выполняет прогон сидера и фиксирует статус в Redis.
func (s *Seeder) HandleSeedTask(ctx context.Context, task *asynq.Task) error {
	var payload SeedTaskPayload

	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	s.saveStatus(ctx, SeedStatus{State: "running"})

	result, err := s.catalogService.Seed(ctx, catalog.SeedParams{
		Target:   payload.Target,
		Keywords: payload.Keywords,
	})
	if err != nil {
		s.saveStatus(ctx, SeedStatus{
			State:      "failed",
			Result:     result,
			Error:      err.Error(),
			FinishedAt: time.Now(),
		})

		return fmt.Errorf("catalogService.Seed: %w", err)
	}

	s.saveStatus(ctx, SeedStatus{
		State:      "done",
		Result:     result,
		FinishedAt: time.Now(),
	})

	if s.notifier != nil {
		if err := s.notifier.SendSeedReport(ctx, result); err != nil {
			logger(ctx).Error("failed to send seed report", "error", err)
		}
	}

	return nil
}

// Status возвращает статус последнего прогона; пустой Redis — idle.
func (s *Seeder) Status(ctx context.Context) (SeedStatus, error) {
	raw, err := s.redisClient.Get(ctx, statusKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return SeedStatus{State: "idle"}, nil
	}

	if err != nil {
		return SeedStatus{}, domain.WrapError(err, errcodes.InternalServerError, "failed to read seed status")
	}

	var status SeedStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return SeedStatus{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode seed status")
	}

	return status, nil
}

func (s *Seeder) saveStatus(ctx context.Context, status SeedStatus) {
	raw, err := json.Marshal(status)
	if err != nil {
		logger(ctx).Error("failed to marshal seed status", "error", err)
		return
	}

	if err := s.redisClient.Set(ctx, statusKey, raw, statusTTL).Err(); err != nil {
		logger(ctx).Error("failed to save seed status", "error", err)
	}
}

// Enqueuer ставит задачу сидера в очередь.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisOpt asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpt)}
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// EnqueueSeed ставит прогон в очередь; повторная постановка в пределах
// окна уникальности отклоняется как уже идущий прогон.
func (e *Enqueuer) EnqueueSeed(ctx context.Context, payload SeedTaskPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskCatalogSeed, raw)

	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(2),
		asynq.Unique(uniqueWindow),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return failure.NewConflictError(
			"seed task is already queued",
			failure.WithCode(errcodes.SeedAlreadyRunning),
			failure.WithDescription("Catalog seed is already in progress"),
		)
	}

	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}

	return nil
}
