package handler

import (
	"context"

	"winedeck/internal/worker"
)

type seedEnqueuer interface {
	EnqueueSeed(ctx context.Context, payload worker.SeedTaskPayload) error
}

type seedStatusProvider interface {
	Status(ctx context.Context) (worker.SeedStatus, error)
}

type catalogService interface {
	CatalogSize(ctx context.Context) (int, error)
}

type Handler struct {
	enqueuer       seedEnqueuer
	statusProvider seedStatusProvider
	catalogService catalogService
}

func New(enqueuer seedEnqueuer, statusProvider seedStatusProvider, catalogService catalogService) *Handler {
	return &Handler{
		enqueuer:       enqueuer,
		statusProvider: statusProvider,
		catalogService: catalogService,
	}
}
