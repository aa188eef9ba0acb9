package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/LendingIndexor/internal/metrics"
	"github.com/goran-ethernal/LendingIndexor/pkg/indexer"
	"golang.org/x/sync/errgroup"
)

// addressRoutes lists the registered indexers (by position) interested in one address.
type addressRoutes struct {
	any     []int
	byTopic map[common.Hash][]int
}

// IndexerCoordinator fans a batch of logs out to the indexers that subscribed
// to their address and event topic.
type IndexerCoordinator struct {
	mu sync.RWMutex

	indexers []indexer.Indexer
	routes   map[common.Address]*addressRoutes
}

// NewIndexerCoordinator creates a coordinator with no indexers.
func NewIndexerCoordinator() *IndexerCoordinator {
	return &IndexerCoordinator{
		routes: make(map[common.Address]*addressRoutes),
	}
}

// RegisterIndexer adds idx to the routing table.
func (ic *IndexerCoordinator) RegisterIndexer(idx indexer.Indexer) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	pos := len(ic.indexers)
	ic.indexers = append(ic.indexers, idx)

	for addr, topics := range idx.EventsToIndex() {
		r, ok := ic.routes[addr]
		if !ok {
			r = &addressRoutes{byTopic: make(map[common.Hash][]int)}
			ic.routes[addr] = r
		}

		if len(topics) == 0 {
			r.any = append(r.any, pos)
			continue
		}
		for topic := range topics {
			r.byTopic[topic] = append(r.byTopic[topic], pos)
		}
	}
}

// partition splits logs per indexer, keeping only those at or past the
// indexer's start block. Order is preserved.
func (ic *IndexerCoordinator) partition(logs []types.Log) [][]types.Log {
	out := make([][]types.Log, len(ic.indexers))
	deliver := func(targets []int, log types.Log) {
		for _, pos := range targets {
			if log.BlockNumber >= ic.indexers[pos].StartBlock() {
				out[pos] = append(out[pos], log)
			}
		}
	}

	for _, log := range logs {
		r, ok := ic.routes[log.Address]
		if !ok {
			continue
		}

		deliver(r.any, log)
		if len(log.Topics) > 0 {
			deliver(r.byTopic[log.Topics[0]], log)
		}
	}

	return out
}

// HandleLogs delivers the logs of blocks [from, to] to the interested indexers,
// along with the fetched headers for indexers that consume them.
// Indexers run concurrently; the first failure cancels the others and is returned.
func (ic *IndexerCoordinator) HandleLogs(ctx context.Context, logs []types.Log, headers []*types.Header,
	from, to uint64) error {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	batches := ic.partition(logs)

	g, gctx := errgroup.WithContext(ctx)
	for pos, batch := range batches {
		if len(batch) == 0 {
			continue
		}

		idx := ic.indexers[pos]
		g.Go(func() error {
			name := idx.GetName()
			start := time.Now()

			var err error
			if consumer, ok := idx.(indexer.HeaderConsumer); ok {
				err = consumer.HandleLogsWithHeaders(gctx, batch, headers)
			} else {
				err = idx.HandleLogs(gctx, batch)
			}
			if err != nil {
				return fmt.Errorf("indexer %s failed to handle logs in blocks %d-%d: %w", name, from, to, err)
			}

			elapsed := time.Since(start)
			metrics.BlockProcessingTimeLog(name, elapsed)
			recordProgress(name, len(batch), elapsed, from, to)
			return nil
		})
	}

	return g.Wait()
}

// Close closes every registered indexer and joins their errors.
func (ic *IndexerCoordinator) Close() error {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	var errs []error
	for _, idx := range ic.indexers {
		if err := idx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close indexer %s: %w", idx.GetName(), err))
		}
	}

	return errors.Join(errs...)
}

// IndexerStartBlocks returns the start block of each registered indexer in registration order.
func (ic *IndexerCoordinator) IndexerStartBlocks() []uint64 {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	blocks := make([]uint64, len(ic.indexers))
	for i, idx := range ic.indexers {
		blocks[i] = idx.StartBlock()
	}
	return blocks
}

func recordProgress(name string, logs int, elapsed time.Duration, from, to uint64) {
	blocks := to - from + 1
	metrics.LogsIndexedInc(name, logs)
	metrics.BlocksProcessedInc(name, blocks)
	metrics.LastIndexedBlockSet(name, to)

	if seconds := elapsed.Seconds(); seconds > 0 {
		metrics.IndexingRateLog(name, float64(blocks)/seconds)
	}
}
