package block

import (
	"context"
	"sync"

	"github.com/japanesestudent/embed-service/internal/models"
)

// MemoryStore is a FieldStore kept in process memory, used for workbench
// scenarios that are rendered without a database row.
type MemoryStore struct {
	mu      sync.Mutex
	configs map[int]models.BlockConfig
}

// NewMemoryStore creates an empty in-memory field store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{configs: make(map[int]models.BlockConfig)}
}

// SaveConfig stores the configuration of a block
func (s *MemoryStore) SaveConfig(ctx context.Context, id int, cfg models.BlockConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[id] = cfg
	return nil
}

// Get returns the stored configuration of a block
func (s *MemoryStore) Get(id int) (models.BlockConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[id]
	return cfg, ok
}
