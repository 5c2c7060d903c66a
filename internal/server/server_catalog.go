package server

import (
	"context"
	"fmt"
	"net/http"

	"winedeck/internal/worker"
	"winedeck/pkg/httpx/reply"
	"winedeck/pkg/httpx/req"
	"winedeck/pkg/rest"
)

type seedEnqueuer interface {
	EnqueueSeed(ctx context.Context, payload worker.SeedTaskPayload) error
}

type seedStatusProvider interface {
	Status(ctx context.Context) (worker.SeedStatus, error)
}

type CatalogServer struct {
	enqueuer       seedEnqueuer
	statusProvider seedStatusProvider
}

func NewCatalogServer(enqueuer seedEnqueuer, statusProvider seedStatusProvider) CatalogServer {
	return CatalogServer{
		enqueuer:       enqueuer,
		statusProvider: statusProvider,
	}
}

func (s CatalogServer) postV1CatalogSync(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SyncRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	err := s.enqueuer.EnqueueSeed(ctx, worker.SeedTaskPayload{
		Target:   request.Target,
		Keywords: request.Keywords,
	})
	if err != nil {
		return fmt.Errorf("enqueuer.EnqueueSeed: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s CatalogServer) getV1CatalogSyncStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status, err := s.statusProvider.Status(ctx)
	if err != nil {
		return fmt.Errorf("statusProvider.Status: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSyncStatus(status))

	return nil
}
