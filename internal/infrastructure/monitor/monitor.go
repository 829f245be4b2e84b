package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/doneo/backend/internal/infrastructure/buffer"
)

const probeTimeout = 3 * time.Second

// Status is a point-in-time snapshot of dependency health.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Monitor periodically probes Postgres, Redis and the offline outbox.
// The buffer processor consults IsOnline before draining, and the health
// endpoint reports the latest snapshot.
type Monitor struct {
	pg     *pgxpool.Pool
	redis  *redislib.Client
	outbox *buffer.Outbox

	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status
	done   chan struct{}
}

func New(pg *pgxpool.Pool, redis *redislib.Client, outbox *buffer.Outbox, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		outbox:   outbox,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.probe()
		for {
			select {
			case <-ticker.C:
				m.probe()
			case <-m.done:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.done)
}

// IsOnline reports whether both primary datastores answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL && m.status.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	status := Status{LastCheck: time.Now()}

	if m.pg != nil {
		status.PostgreSQL = m.pg.Ping(ctx) == nil
	}
	if m.redis != nil {
		status.Redis = m.redis.Ping(ctx).Err() == nil
	}
	if m.outbox != nil {
		size, err := m.outbox.Size()
		if err != nil {
			m.logger.Warn("outbox size check failed", zap.Error(err))
		} else {
			status.Buffer = true
			status.BufferSize = size
		}
	}

	m.mu.Lock()
	wasOnline := m.status.PostgreSQL && m.status.Redis
	m.status = status
	m.mu.Unlock()

	nowOnline := status.PostgreSQL && status.Redis
	if wasOnline != nowOnline {
		m.logger.Info("connectivity changed",
			zap.Bool("online", nowOnline),
			zap.Bool("postgres", status.PostgreSQL),
			zap.Bool("redis", status.Redis),
		)
	}
}
