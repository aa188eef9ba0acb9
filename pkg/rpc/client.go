// Package rpc declares the node access the downloader and the indexers share.
package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClient is a retrying JSON-RPC client. Implementations must be safe for
// concurrent use; one instance serves every indexer.
type EthClient interface {
	GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// Head headers by block tag.
	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
	GetSafeBlockHeader(ctx context.Context) (*types.Header, error)
	GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error)

	// BatchGetBlockHeaders returns the headers of blockNums in the same order.
	BatchGetBlockHeaders(ctx context.Context, blockNums []uint64) ([]*types.Header, error)

	// BatchGetReceipts returns the receipts of txHashes in the same order.
	BatchGetReceipts(ctx context.Context, txHashes []common.Hash) ([]*types.Receipt, error)

	// CallContract runs eth_call against the state at blockNum. Reverts are
	// returned without retrying.
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNum uint64) ([]byte, error)

	Close()
}
