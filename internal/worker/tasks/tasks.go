package tasks

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/normalize"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
)

// Task names
const (
	TypeRefreshCatalog = "catalog:refresh"
)

// CatalogWriter is the cache surface the refresh task needs. Satisfied by
// cache.CatalogCache in production.
type CatalogWriter interface {
	SetPackages(ctx context.Context, packages []entity.Package) error
}

// TaskHandlers holds dependencies for all task handlers.
type TaskHandlers struct {
	client  *upstream.Client
	catalog CatalogWriter
	logger  *zap.Logger
}

// NewTaskHandlers creates task handlers with upstream and cache access.
func NewTaskHandlers(client *upstream.Client, catalog CatalogWriter) *TaskHandlers {
	return &TaskHandlers{
		client:  client,
		catalog: catalog,
		logger:  logging.Logger,
	}
}

// RegisterHandlers registers all task handlers with the server mux.
func RegisterHandlers(mux *asynq.ServeMux, h *TaskHandlers) {
	mux.HandleFunc(TypeRefreshCatalog, h.HandleRefreshCatalog)
}

// RegisterScheduledTasks registers all scheduled (cron) tasks
func RegisterScheduledTasks(scheduler *asynq.Scheduler) {
	// Keep the package catalog cache warm
	_, err := scheduler.Register("*/5 * * * *", asynq.NewTask(TypeRefreshCatalog, nil))
	if err != nil {
		logging.Logger.Error("Failed to schedule catalog refresh", zap.Error(err))
	}
}

// HandleRefreshCatalog re-fetches the package catalog from the upstream and
// rewrites the cache entry. A failed fetch leaves the old entry in place
// until its TTL expires.
func (h *TaskHandlers) HandleRefreshCatalog(ctx context.Context, t *asynq.Task) error {
	res, err := h.client.ListPackages(ctx)
	if err != nil {
		h.logger.Warn("catalog refresh: upstream fetch failed", zap.Error(err))
		return err
	}

	packages := normalize.ResolvePackages(res.Body)
	if err := h.catalog.SetPackages(ctx, packages); err != nil {
		h.logger.Error("catalog refresh: cache write failed", zap.Error(err))
		return err
	}

	h.logger.Info("catalog refreshed", zap.Int("packages", len(packages)))
	return nil
}
