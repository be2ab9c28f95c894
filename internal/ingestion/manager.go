package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/havenapp/haven/internal/alertstore"
	"github.com/havenapp/haven/internal/config"
	"github.com/havenapp/haven/internal/models"
	"github.com/havenapp/haven/internal/worker"
)

// Manager polls the configured USGS feed on a ticker and pushes new
// alerts through the worker pool into the store. A poll that is still
// running when the ticker fires again is skipped, never stacked.
type Manager struct {
	cfg      *config.Config
	store    *alertstore.Store
	client   *USGSClient
	pool     *worker.Pool
	inFlight atomic.Bool
	wg       sync.WaitGroup
}

func NewManager(cfg *config.Config, store *alertstore.Store, client *USGSClient) *Manager {
	return &Manager{
		cfg:    cfg,
		store:  store,
		client: client,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, m.process)
	m.pool.Start(ctx)

	if m.cfg.Sources.USGSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx)
	}
}

func (m *Manager) process(ctx context.Context, alert models.DisasterAlert) error {
	m.store.Upsert(alert)
	slog.Debug("ingested alert", "id", alert.ID, "type", alert.Type, "severity", alert.Severity)
	return nil
}

func (m *Manager) runPoller(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", "usgs", "feed", m.cfg.Sources.USGSFeed, "interval", m.cfg.Sources.USGSPollInterval)

	ticker := time.NewTicker(m.cfg.Sources.USGSPollInterval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", "usgs")
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	if !m.inFlight.CompareAndSwap(false, true) {
		slog.Warn("skipping poll, previous still running", "source", "usgs")
		return
	}
	defer m.inFlight.Store(false)

	slog.Debug("polling", "source", "usgs")

	alerts, err := m.client.Fetch(ctx, m.cfg.Sources.USGSFeed)
	if err != nil {
		slog.Error("poll failed", "source", "usgs", "error", err)
		return
	}

	for _, a := range alerts {
		m.pool.Submit(a)
	}

	slog.Debug("poll complete", "source", "usgs", "count", len(alerts))
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("ingestion manager stopped")
}
