package indexer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Indexer defines the interface that all indexers must implement.
// Indexers receive finalized logs from the downloader in block order.
type Indexer interface {
	// GetName returns the configured name of this indexer instance.
	GetName() string

	// GetType returns the registry type this indexer was created from.
	GetType() string

	// EventsToIndex returns a map of contract addresses to their event topic hashes.
	// This is used by the coordinator to determine which logs should be sent to this indexer.
	// The inner map is a set (using struct{} as values) of topic hashes for each address.
	// An empty topic set means every event of that address.
	EventsToIndex() map[common.Address]map[common.Hash]struct{}

	// HandleLogs processes a batch of logs received from the downloader.
	// Logs arrive sorted by block number, transaction index and log index.
	// A batch is applied atomically: on error nothing of it is persisted.
	HandleLogs(ctx context.Context, logs []types.Log) error

	// StartBlock returns the block number from which this indexer wants to start processing logs.
	// The downloader will use the minimum StartBlock across all registered indexers to determine
	// the earliest block to fetch. Each indexer will only receive logs from blocks >= its StartBlock.
	StartBlock() uint64

	// Close releases the resources held by the indexer.
	Close() error
}

// HeaderConsumer is implemented by indexers that need block headers of the
// blocks their logs come from. The coordinator hands them the headers the
// downloader already fetched instead of calling HandleLogs.
type HeaderConsumer interface {
	Indexer

	// HandleLogsWithHeaders is HandleLogs with the known headers of the
	// batch's blocks. headers may miss blocks; those are for the indexer to fetch.
	HandleLogsWithHeaders(ctx context.Context, logs []types.Log, headers []*types.Header) error
}
