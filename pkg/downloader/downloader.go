// Package downloader holds the contracts between the log downloader, its
// checkpoint store and the indexers it feeds.
package downloader

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/pkg/fetcher"
	"github.com/goran-ethernal/LendingIndexor/pkg/indexer"
)

// Downloader streams finalized logs to registered indexers.
type Downloader interface {
	// RegisterIndexer subscribes idx to the addresses and topics it reports
	// through EventsToIndex. It must be called before Download.
	RegisterIndexer(idx indexer.Indexer)

	// Download runs until ctx is cancelled or a batch fails.
	Download(ctx context.Context) error

	Close() error
}

// SyncManager persists the download checkpoint: the last block whose logs
// were handed to every indexer.
type SyncManager interface {
	GetLastIndexedBlock() (uint64, error)
	GetState() (*SyncState, error)

	// SaveCheckpoint records blockNum as delivered.
	SaveCheckpoint(blockNum uint64, blockHash common.Hash, mode fetcher.FetchMode) error

	// Reset moves the checkpoint to startBlock in backfill mode, so the next
	// download starts at startBlock+1.
	Reset(startBlock uint64) error

	Close() error
}

// SyncState is the single checkpoint row.
type SyncState struct {
	ID                   int         `meddler:"id,pk" json:"-"`
	LastIndexedBlock     uint64      `meddler:"last_indexed_block" json:"last_indexed_block"`
	LastIndexedBlockHash common.Hash `meddler:"last_indexed_block_hash,hash" json:"last_indexed_block_hash"`
	LastIndexedTimestamp int64       `meddler:"last_indexed_timestamp" json:"last_indexed_timestamp"`
	Mode                 string      `meddler:"mode" json:"mode"`
}

// GetMode returns the mode the checkpoint was written in.
func (s *SyncState) GetMode() fetcher.FetchMode {
	return fetcher.FetchMode(s.Mode)
}
