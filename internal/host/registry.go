package host

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdemcore/internal/config"
	"github.com/cardroomlabs/holdemcore/internal/engine"
)

// ErrUnknownTable is returned for lookups of tables that do not exist.
var ErrUnknownTable = errors.New("unknown table")

// Registry tracks the live tables by ID.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*TableHost
	logger *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		tables: make(map[string]*TableHost),
		logger: logger.WithPrefix("registry"),
	}
}

// Create seats the players at a new table and registers it.
func (r *Registry) Create(cfg config.TableConfig, seats []engine.Seat, opts ...TableOption) (*TableHost, error) {
	table, err := NewTable(cfg, seats, opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.tables[table.ID()] = table
	r.mu.Unlock()

	r.logger.Info("table created", "table", table.ID(), "name", cfg.Name, "seats", len(seats))
	return table, nil
}

// Get looks up a table by ID.
func (r *Registry) Get(id string) (*TableHost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[id]
	if !ok {
		return nil, ErrUnknownTable
	}
	return table, nil
}

// List returns the IDs of all registered tables.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	return ids
}

// Remove closes a table and drops it from the registry.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.tables[id]
	if !ok {
		return ErrUnknownTable
	}
	table.mu.Lock()
	if table.timer != nil {
		table.timer.Stop()
		table.timer = nil
	}
	table.mu.Unlock()
	delete(r.tables, id)
	r.logger.Info("table removed", "table", id)
	return nil
}
