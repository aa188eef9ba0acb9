package indexer

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	"github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

// Factory is a function that creates a new indexer instance.
// client is shared by all indexers and the downloader; indexers must not close it.
type Factory func(cfg config.IndexerConfig, client rpc.EthClient, log *logger.Logger) (Indexer, error)

// factories maps lowercase type names to their factory.
type factories struct {
	mu     sync.RWMutex
	byType map[string]Factory
}

var registry = &factories{byType: make(map[string]Factory)}

func (f *factories) set(indexerType string, factory Factory) (replaced bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.ToLower(indexerType)
	_, replaced = f.byType[key]
	f.byType[key] = factory
	return replaced
}

func (f *factories) get(indexerType string) Factory {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byType[strings.ToLower(indexerType)]
}

func (f *factories) names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.byType))
}

// Register makes factory available under indexerType, case-insensitively.
// Indexer packages call it from init(). A second registration of the same type wins.
func Register(indexerType string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("nil factory registered for indexer type %q", indexerType))
	}

	if registry.set(indexerType, factory) {
		logger.GetDefaultLogger().Warnf("indexer type %s registered twice, keeping the latest factory",
			strings.ToLower(indexerType))
	}
}

// GetFactory returns the factory for the given indexer type, or nil.
func GetFactory(indexerType string) Factory {
	return registry.get(indexerType)
}

// ListRegistered returns the registered indexer types in sorted order.
func ListRegistered() []string {
	return registry.names()
}

// Create builds an indexer of the given type.
func Create(indexerType string, cfg config.IndexerConfig, client rpc.EthClient, log *logger.Logger) (Indexer, error) {
	factory := GetFactory(indexerType)
	if factory == nil {
		return nil, fmt.Errorf("unknown indexer type: %s (registered types: %v)", indexerType, ListRegistered())
	}

	idx, err := factory(cfg, client, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s indexer %s: %w", indexerType, cfg.Name, err)
	}
	if idx == nil {
		return nil, fmt.Errorf("factory for %s returned no indexer", indexerType)
	}

	return idx, nil
}
