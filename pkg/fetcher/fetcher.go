// Package fetcher describes how finalized logs are pulled from the chain.
package fetcher

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
)

// FetchMode is either backfill (catching up in chunks) or live (waiting for
// new finalized blocks).
type FetchMode string

const (
	ModeBackfill FetchMode = "backfill"
	ModeLive     FetchMode = "live"
)

func (m FetchMode) String() string {
	return string(m)
}

// LogFetcher reads logs of subscribed contracts block range by block range.
type LogFetcher interface {
	SetMode(mode FetchMode)
	GetMode() FetchMode

	// FetchRange returns the logs and headers of blocks [fromBlock, toBlock].
	FetchRange(ctx context.Context, fromBlock, toBlock uint64) (*FetchResult, error)

	// FetchNext returns the range following lastIndexedBlock. In live mode it
	// blocks until a new finalized block is available or ctx is done.
	FetchNext(ctx context.Context, lastIndexedBlock uint64) (*FetchResult, error)
}

// FetchResult is one fetched range. Logs are ordered by block number,
// transaction index and log index. Headers cover every block that emitted a
// log plus ToBlock, ascending.
type FetchResult struct {
	Logs      []types.Log
	Headers   []*types.Header
	FromBlock uint64
	ToBlock   uint64
}
