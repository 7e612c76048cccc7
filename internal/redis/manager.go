package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Database selects a logical Redis database.
type Database int

// CacheDB holds the pub schedule and amenity cache.
const CacheDB Database = 0

// Manager hands out one rueidis client per logical database, created on first use.
type Manager struct {
	cfg    *config.Redis
	logger *zap.Logger

	mu      sync.Mutex
	clients map[Database]rueidis.Client
}

func NewManager(cfg *config.Redis, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:     cfg,
		logger:  logger.Named("redis"),
		clients: make(map[Database]rueidis.Client),
	}
}

func (m *Manager) options(db Database) rueidis.ClientOption {
	return rueidis.ClientOption{
		InitAddress:         []string{net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))},
		Username:            m.cfg.Username,
		Password:            m.cfg.Password,
		SelectDB:            int(db),
		ClientName:          "pintwise",
		DisableCache:        m.cfg.DisableClientCache,
		ReadBufferEachConn:  1 << 18,
		WriteBufferEachConn: 1 << 18,
	}
}

// Client returns the client for db, dialing it if this is the first request.
func (m *Manager) Client(db Database) (rueidis.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client, ok := m.clients[db]; ok {
		return client, nil
	}

	client, err := rueidis.NewClient(m.options(db))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis db %d: %w", db, err)
	}

	m.clients[db] = client
	m.logger.Info("Connected to Redis",
		zap.Int("db", int(db)),
		zap.Bool("clientCache", !m.cfg.DisableClientCache))
	return client, nil
}

// Ping fails on the first client that does not answer.
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for db, client := range m.clients {
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			return fmt.Errorf("redis db %d: %w", db, err)
		}
	}
	return nil
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for db, client := range m.clients {
		client.Close()
		delete(m.clients, db)
	}
	m.logger.Info("Closed Redis clients")
}
