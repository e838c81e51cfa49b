package app

import (
	"context"
	"fmt"
	"time"

	"github.com/stationone-hq/stationone-menu/internal/config"
	"github.com/stationone-hq/stationone-menu/internal/harvest"
	"github.com/stationone-hq/stationone-menu/internal/logger"
	"github.com/stationone-hq/stationone-menu/internal/storage"
	"github.com/stationone-hq/stationone-menu/pkg/deployments"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
	"github.com/stationone-hq/stationone-menu/pkg/publishers"
)

// Harvester represents the menu harvester runtime. It walks one deployment on
// a fixed interval and publishes new or changed menu items to the configured
// sinks. It owns the publishers and the change store.
type Harvester struct {
	deployment deployments.Deployment
	fanout     *publishers.Fanout
	service    *harvest.Service
	interval   time.Duration
	log        logger.Logger
	store      storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dep, clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("resolve deployment: %w", err)
	}
	client, err := menuapi.New(clientCfg, nil, log)
	if err != nil {
		return nil, fmt.Errorf("init menu api client: %w", err)
	}
	log.InfoObj("deployment resolved", "deployment_meta", map[string]any{
		"id":       dep.ID,
		"base_url": clientCfg.BaseURL,
		"route":    string(clientCfg.ProductsBySubCategoryRoute),
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)

	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return newHarvester(dep, client, fanout, store, cfg.HarvestInterval, log), nil
}

func newHarvester(dep deployments.Deployment, src harvest.Source, fanout *publishers.Fanout, store storage.Store, interval time.Duration, log logger.Logger) *Harvester {
	return &Harvester{
		deployment: dep,
		fanout:     fanout,
		service:    harvest.NewService(dep.ID, src, 0, fanout, store, log),
		interval:   interval,
		log:        log,
		store:      store,
	}
}

// Run starts the harvest loop until the context is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.service == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.close()

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"deployment_id":    h.deployment.ID,
		"publishers_count": h.fanout.Size(),
		"harvest_interval": h.interval.String(),
	})

	if err := h.runOnce(ctx); err != nil {
		h.log.ErrorObj("initial harvest failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx); err != nil {
				h.log.ErrorObj("scheduled harvest failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single walk-and-publish pass.
func (h *Harvester) runOnce(ctx context.Context) error {
	start := time.Now()
	h.log.InfoObj("harvest started", "harvest_meta", map[string]any{
		"deployment_id": h.deployment.ID,
		"started_at":    start.UTC(),
	})
	res, err := h.service.Run(ctx)
	h.log.InfoObj("harvest finished", "harvest_meta", map[string]any{
		"deployment_id": h.deployment.ID,
		"published":     res.Published,
		"unchanged":     res.Unchanged,
		"failed":        res.Failed,
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return err
}

// close releases publishers and the storage backend, logging failures.
func (h *Harvester) close() {
	h.fanout.Close()
	if h.store == nil {
		return
	}
	if err := h.store.Close(); err != nil {
		h.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
