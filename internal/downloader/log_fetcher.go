package downloader

import (
	"cmp"
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/internal/rpc"
	itypes "github.com/goran-ethernal/LendingIndexor/internal/types"
	"github.com/goran-ethernal/LendingIndexor/pkg/fetcher"
	pkgrpc "github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

var _ fetcher.LogFetcher = (*LogFetcher)(nil)

// LogFetcherConfig contains configuration for the LogFetcher.
type LogFetcherConfig struct {
	// ChunkSize is the number of blocks to fetch per request
	ChunkSize uint64

	// Finality specifies the finality mode
	Finality itypes.BlockFinality

	// FinalizedLag is blocks behind head to consider finalized (only for "latest" mode)
	FinalizedLag uint64

	// PollInterval is how long live mode sleeps when there is no new final block
	PollInterval time.Duration

	// Addresses are the contract addresses to filter
	Addresses []common.Address

	// Topics is the positional topic filter passed to eth_getLogs
	Topics [][]common.Hash
}

// LogFetcher handles fetching logs and block headers from the blockchain.
// It only ever reads blocks at or below the configured finality threshold.
type LogFetcher struct {
	cfg  LogFetcherConfig
	rpc  pkgrpc.EthClient
	log  *logger.Logger
	mode FetchMode
}

// NewLogFetcher creates a new LogFetcher instance.
func NewLogFetcher(cfg LogFetcherConfig, rpcClient pkgrpc.EthClient, log *logger.Logger) *LogFetcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 12 * time.Second //nolint:mnd
	}

	return &LogFetcher{
		cfg:  cfg,
		rpc:  rpcClient,
		log:  log.WithComponent(internalcommon.ComponentLogFetcher),
		mode: ModeBackfill,
	}
}

// SetMode changes the fetcher's operating mode.
func (lf *LogFetcher) SetMode(mode FetchMode) {
	if lf.mode != mode {
		lf.log.Infow("switching fetch mode", "from", lf.mode, "to", mode)
	}
	lf.mode = mode
}

// GetMode returns the current operating mode.
func (lf *LogFetcher) GetMode() FetchMode {
	return lf.mode
}

// FetchRange fetches logs for a block range together with the headers of
// every block that emitted a log and of toBlock.
func (lf *LogFetcher) FetchRange(ctx context.Context, fromBlock, toBlock uint64) (*FetchResult, error) {
	lf.log.Debugw("fetching range",
		"from_block", fromBlock,
		"to_block", toBlock,
		"mode", lf.mode,
	)

	logs, err := lf.getLogs(ctx, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	SortLogs(logs)

	blockNumbers := make([]uint64, 0)
	seen := make(map[uint64]struct{})
	for _, l := range logs {
		if _, ok := seen[l.BlockNumber]; !ok {
			seen[l.BlockNumber] = struct{}{}
			blockNumbers = append(blockNumbers, l.BlockNumber)
		}
	}
	if _, ok := seen[toBlock]; !ok {
		blockNumbers = append(blockNumbers, toBlock)
	}

	headers, err := lf.rpc.BatchGetBlockHeaders(ctx, blockNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headers: %w", err)
	}

	if err := verifyLogHashes(logs, headers); err != nil {
		return nil, err
	}

	lf.log.Infow("fetched range",
		"from_block", fromBlock,
		"to_block", toBlock,
		"logs_count", len(logs),
		"mode", lf.mode,
	)

	return &FetchResult{
		Logs:      logs,
		Headers:   headers,
		FromBlock: fromBlock,
		ToBlock:   toBlock,
	}, nil
}

// getLogs runs eth_getLogs over [fromBlock, toBlock]. When the provider refuses
// the range for returning too many results the range is split, using the
// provider's suggested range when it gives one.
func (lf *LogFetcher) getLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	logs, err := lf.rpc.GetLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: lf.cfg.Addresses,
		Topics:    lf.cfg.Topics,
	})
	if err == nil {
		return logs, nil
	}

	tooMany, data := rpc.IsTooManyResultsError(err)
	if !tooMany || fromBlock == toBlock {
		return nil, err
	}

	splitAt := fromBlock + (toBlock-fromBlock)/2 //nolint:mnd
	if _, suggestedTo, ok := rpc.ParseSuggestedBlockRange(data); ok && suggestedTo >= fromBlock && suggestedTo < toBlock {
		splitAt = suggestedTo
	}

	lf.log.Debugw("splitting block range",
		"from_block", fromBlock,
		"to_block", toBlock,
		"split_at", splitAt,
	)

	left, err := lf.getLogs(ctx, fromBlock, splitAt)
	if err != nil {
		return nil, err
	}
	right, err := lf.getLogs(ctx, splitAt+1, toBlock)
	if err != nil {
		return nil, err
	}

	return append(left, right...), nil
}

// FetchNext fetches the next chunk of logs based on the current mode.
func (lf *LogFetcher) FetchNext(ctx context.Context, lastIndexedBlock uint64) (*FetchResult, error) {
	switch lf.mode {
	case ModeBackfill:
		return lf.fetchBackfill(ctx, lastIndexedBlock)
	case ModeLive:
		return lf.fetchLive(ctx, lastIndexedBlock)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", lf.mode)
	}
}

// fetchBackfill fetches historical blocks in chunks.
func (lf *LogFetcher) fetchBackfill(ctx context.Context, lastIndexedBlock uint64) (*FetchResult, error) {
	finalizedBlock, err := lf.getFinalizedBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get finalized block: %w", err)
	}

	fromBlock := lastIndexedBlock + 1
	if fromBlock > finalizedBlock {
		lf.log.Info("backfill complete, switching to live mode")
		lf.SetMode(ModeLive)
		return lf.fetchLive(ctx, lastIndexedBlock)
	}

	toBlock := min(fromBlock+lf.cfg.ChunkSize-1, finalizedBlock)

	return lf.FetchRange(ctx, fromBlock, toBlock)
}

// fetchLive tails new blocks as they become final.
func (lf *LogFetcher) fetchLive(ctx context.Context, lastIndexedBlock uint64) (*FetchResult, error) {
	fromBlock := lastIndexedBlock + 1

	for {
		finalizedBlock, err := lf.getFinalizedBlock(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get finalized block: %w", err)
		}

		if fromBlock <= finalizedBlock {
			toBlock := min(fromBlock+lf.cfg.ChunkSize-1, finalizedBlock)
			return lf.FetchRange(ctx, fromBlock, toBlock)
		}

		lf.log.Debugw("waiting for new blocks",
			"last_indexed", lastIndexedBlock,
			"finalized", finalizedBlock,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lf.cfg.PollInterval):
		}
	}
}

// getFinalizedBlock gets the block number considered final based on config.
func (lf *LogFetcher) getFinalizedBlock(ctx context.Context) (uint64, error) {
	return lf.cfg.Finality.FinalBlock(ctx, lf.rpc, lf.cfg.FinalizedLag)
}

// SortLogs orders logs by block number, transaction index and log index.
func SortLogs(logs []types.Log) {
	slices.SortStableFunc(logs, func(a, b types.Log) int {
		if c := cmp.Compare(a.BlockNumber, b.BlockNumber); c != 0 {
			return c
		}
		if c := cmp.Compare(a.TxIndex, b.TxIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// verifyLogHashes rejects a range whose logs and headers disagree on a block
// hash, which means the node served data from two different chains.
func verifyLogHashes(logs []types.Log, headers []*types.Header) error {
	hashes := make(map[uint64]common.Hash, len(headers))
	for _, h := range headers {
		hashes[h.Number.Uint64()] = h.Hash()
	}

	for _, l := range logs {
		if want, ok := hashes[l.BlockNumber]; ok && want != l.BlockHash {
			return fmt.Errorf("%w: block %d log hash %s header hash %s",
				ErrInconsistentBlock, l.BlockNumber, l.BlockHash.Hex(), want.Hex())
		}
	}

	return nil
}
