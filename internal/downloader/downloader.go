package downloader

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/indexer"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/internal/metrics"
	"github.com/goran-ethernal/LendingIndexor/internal/types"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	pkgdownloader "github.com/goran-ethernal/LendingIndexor/pkg/downloader"
	idx "github.com/goran-ethernal/LendingIndexor/pkg/indexer"
	pkgrpc "github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

var _ pkgdownloader.Downloader = (*Downloader)(nil)

// Downloader orchestrates the log downloading process.
// It coordinates LogFetcher, SyncManager, and IndexerCoordinator to stream
// final blockchain logs to registered indexers, one chunk at a time.
type Downloader struct {
	cfg         config.DownloaderConfig
	rpc         pkgrpc.EthClient
	syncManager pkgdownloader.SyncManager
	log         *logger.Logger
	coordinator *indexer.IndexerCoordinator
	logFetcher  *LogFetcher

	// Filter configuration built from registered indexers
	mu        sync.RWMutex
	addresses []common.Address
	topics    map[common.Hash]struct{}
	allTopics bool
}

// New creates a new Downloader instance.
func New(
	cfg config.DownloaderConfig,
	rpcClient pkgrpc.EthClient,
	syncManager pkgdownloader.SyncManager,
	log *logger.Logger,
) (*Downloader, error) {
	if rpcClient == nil {
		return nil, errors.New("RPC client is required")
	}
	if syncManager == nil {
		return nil, errors.New("SyncManager is required")
	}
	if log == nil {
		return nil, errors.New("Logger is required")
	}

	d := &Downloader{
		cfg:         cfg,
		rpc:         rpcClient,
		syncManager: syncManager,
		log:         log.WithComponent(internalcommon.ComponentDownloader),
		coordinator: indexer.NewIndexerCoordinator(),
		addresses:   make([]common.Address, 0),
		topics:      make(map[common.Hash]struct{}),
	}

	d.log.Info("downloader initialized")

	return d, nil
}

// RegisterIndexer registers an indexer to receive logs.
// The downloader will use the indexer's EventsToIndex method to determine
// which logs to fetch and forward.
func (d *Downloader) RegisterIndexer(i idx.Indexer) {
	eventsToIndex := i.EventsToIndex()

	d.mu.Lock()
	for addr, topicSet := range eventsToIndex {
		if !slices.Contains(d.addresses, addr) {
			d.addresses = append(d.addresses, addr)
		}
		if len(topicSet) == 0 {
			d.allTopics = true
		}
		for topic := range topicSet {
			d.topics[topic] = struct{}{}
		}
	}
	totalAddresses, totalTopics := len(d.addresses), len(d.topics)
	d.mu.Unlock()

	d.coordinator.RegisterIndexer(i)

	d.log.Infow("indexer registered",
		"indexer", i.GetName(),
		"type", i.GetType(),
		"start_block", i.StartBlock(),
		"total_addresses", totalAddresses,
		"total_topics", totalTopics,
	)
}

// filter returns the eth_getLogs address and topic filter covering every
// registered indexer. Topics only constrain the event signature position;
// the coordinator does the exact per address routing.
func (d *Downloader) filter() ([]common.Address, [][]common.Hash) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	addresses := slices.Clone(d.addresses)
	if d.allTopics || len(d.topics) == 0 {
		return addresses, nil
	}

	signatures := make([]common.Hash, 0, len(d.topics))
	for topic := range d.topics {
		signatures = append(signatures, topic)
	}
	slices.SortFunc(signatures, func(a, b common.Hash) int { return a.Cmp(b) })

	return addresses, [][]common.Hash{signatures}
}

func (d *Downloader) getDownloaderStartBlock() uint64 {
	startBlocks := d.coordinator.IndexerStartBlocks()
	if len(startBlocks) == 0 {
		return 0
	}
	return slices.Min(startBlocks)
}

// Download starts the download process, streaming logs to registered indexers.
// It continues until the context is cancelled or an error occurs.
func (d *Downloader) Download(ctx context.Context) error {
	d.log.Info("starting download process")

	finality, err := types.ParseBlockFinality(d.cfg.Finality)
	if err != nil {
		return fmt.Errorf("invalid finality configuration: %w", err)
	}

	addresses, topics := d.filter()
	if len(addresses) == 0 {
		return errors.New("no contract addresses to index")
	}

	d.logFetcher = NewLogFetcher(LogFetcherConfig{
		ChunkSize:    d.cfg.ChunkSize,
		Finality:     finality,
		FinalizedLag: d.cfg.FinalizedLag,
		PollInterval: d.cfg.PollInterval.Duration,
		Addresses:    addresses,
		Topics:       topics,
	}, d.rpc, d.log)

	state, err := d.syncManager.GetState()
	if err != nil {
		return fmt.Errorf("failed to get sync state: %w", err)
	}

	// A fresh database and an indexer starting at genesis both leave the
	// checkpoint at zero, so genesis itself is never fetched.
	lastIndexedBlock := state.LastIndexedBlock
	if startBlock := d.getDownloaderStartBlock(); lastIndexedBlock == 0 && startBlock > 0 {
		lastIndexedBlock = startBlock - 1
		d.log.Infow("starting fresh download", "start_block", startBlock)
	} else {
		d.log.Infow("resuming download", "last_indexed_block", lastIndexedBlock)
	}

	d.logFetcher.SetMode(ModeBackfill)
	metrics.ComponentHealthSet(internalcommon.ComponentDownloader, true)

	for {
		select {
		case <-ctx.Done():
			d.log.Info("download cancelled")
			return ctx.Err()
		default:
		}

		next, err := d.step(ctx, lastIndexedBlock)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.ComponentHealthSet(internalcommon.ComponentDownloader, false)
			metrics.ErrorsInc(internalcommon.ComponentDownloader, "fatal")
			d.log.Errorw("download stopped", "error", err, "last_block", lastIndexedBlock)
			return err
		}
		lastIndexedBlock = next
	}
}

// step fetches, dispatches and checkpoints one chunk. It returns the new
// last indexed block.
func (d *Downloader) step(ctx context.Context, lastIndexedBlock uint64) (uint64, error) {
	result, err := d.logFetcher.FetchNext(ctx, lastIndexedBlock)
	if err != nil {
		return lastIndexedBlock, fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(result.Logs) > 0 {
		d.log.Debugw("processing logs",
			"count", len(result.Logs),
			"from_block", result.FromBlock,
			"to_block", result.ToBlock,
		)

		if err := d.coordinator.HandleLogs(ctx, result.Logs, result.Headers,
			result.FromBlock, result.ToBlock); err != nil {
			return lastIndexedBlock, fmt.Errorf("failed to handle logs: %w", err)
		}
	}

	lastHeader := result.Headers[len(result.Headers)-1]
	for _, h := range result.Headers {
		if h.Number.Uint64() == result.ToBlock {
			lastHeader = h
		}
	}
	blockHash := lastHeader.Hash()

	if err := d.syncManager.SaveCheckpoint(result.ToBlock, blockHash, d.logFetcher.GetMode()); err != nil {
		return lastIndexedBlock, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	d.log.Infow("checkpoint saved",
		"block", result.ToBlock,
		"block_hash", blockHash.Hex(),
		"mode", d.logFetcher.GetMode(),
		"logs_processed", len(result.Logs),
	)

	return result.ToBlock, nil
}

// Close closes the downloader, its indexers and releases resources.
func (d *Downloader) Close() error {
	d.log.Info("closing downloader")

	var errs []error
	if err := d.coordinator.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := d.syncManager.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close sync manager: %w", err))
	}

	d.rpc.Close()

	return errors.Join(errs...)
}
