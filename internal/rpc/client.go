package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	pkgrpc "github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

const maxBatch = 100

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

// Client wraps the Ethereum RPC client with convenience methods for indexing.
// Every call is counted and timed, and retried with backoff when a retry
// configuration is given.
type Client struct {
	eth   *ethclient.Client
	rpc   *rpc.Client
	retry *config.RetryConfig
}

// NewClient creates a new RPC client connected to the given endpoint.
// A nil retry config executes every call exactly once.
func NewClient(ctx context.Context, endpoint string, retry *config.RetryConfig) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		eth:   ethclient.NewClient(rpcClient),
		rpc:   rpcClient,
		retry: retry,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GetLogs retrieves logs matching the given filter query.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	return call(ctx, c, "eth_getLogs", func() ([]types.Log, error) {
		return c.eth.FilterLogs(ctx, query)
	})
}

// GetLatestBlockHeader retrieves the latest block header.
func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, nil)
}

// GetFinalizedBlockHeader retrieves the finalized block header.
func (c *Client) GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

// GetSafeBlockHeader retrieves the safe block header.
func (c *Client) GetSafeBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.SafeBlockNumber)))
}

func (c *Client) headerByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return call(ctx, c, "eth_getBlockByNumber", func() (*types.Header, error) {
		return c.eth.HeaderByNumber(ctx, number)
	})
}

// CallContract executes a read only call against the state at blockNum.
// A reverted call is not retried; its error is returned as the node reported it.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNum uint64) ([]byte, error) {
	return call(ctx, c, "eth_call", func() ([]byte, error) {
		return c.eth.CallContract(ctx, msg, new(big.Int).SetUint64(blockNum))
	})
}

// BatchGetBlockHeaders retrieves headers for multiple block numbers in batches of at most 100 calls.
func (c *Client) BatchGetBlockHeaders(ctx context.Context, blockNums []uint64) ([]*types.Header, error) {
	allResults := make([]*types.Header, 0, len(blockNums))

	for i := 0; i < len(blockNums); i += maxBatch {
		chunk := blockNums[i:min(i+maxBatch, len(blockNums))]

		batch := make([]rpc.BatchElem, len(chunk))
		results := make([]*types.Header, len(chunk))

		for j, blockNum := range chunk {
			batch[j] = rpc.BatchElem{
				Method: "eth_getBlockByNumber",
				Args:   []any{toBlockNumArg(blockNum), false}, // false = don't include transactions
				Result: &results[j],
			}
		}

		if err := c.batchCall(ctx, "batch_eth_getBlockByNumber", batch); err != nil {
			return nil, err
		}

		allResults = append(allResults, results...)
	}

	return allResults, nil
}

// BatchGetReceipts retrieves the receipts of the given transactions in batches of at most 100 calls.
// The result is in the same order as txHashes.
func (c *Client) BatchGetReceipts(ctx context.Context, txHashes []common.Hash) ([]*types.Receipt, error) {
	allResults := make([]*types.Receipt, 0, len(txHashes))

	for i := 0; i < len(txHashes); i += maxBatch {
		chunk := txHashes[i:min(i+maxBatch, len(txHashes))]

		batch := make([]rpc.BatchElem, len(chunk))
		results := make([]*types.Receipt, len(chunk))

		for j, hash := range chunk {
			batch[j] = rpc.BatchElem{
				Method: "eth_getTransactionReceipt",
				Args:   []any{hash},
				Result: &results[j],
			}
		}

		if err := c.batchCall(ctx, "batch_eth_getTransactionReceipt", batch); err != nil {
			return nil, err
		}

		for j, receipt := range results {
			if receipt == nil {
				return nil, fmt.Errorf("receipt not found for transaction %s", chunk[j].Hex())
			}
		}

		allResults = append(allResults, results...)
	}

	return allResults, nil
}

func (c *Client) batchCall(ctx context.Context, method string, batch []rpc.BatchElem) error {
	_, err := call(ctx, c, method, func() (struct{}, error) {
		for i := range batch {
			batch[i].Error = nil
		}

		if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
			return struct{}{}, err
		}

		// Check for individual errors
		for _, elem := range batch {
			if elem.Error != nil {
				return struct{}{}, elem.Error
			}
		}

		return struct{}{}, nil
	})

	return err
}

// call runs fn under the client's retry policy and records request metrics.
func call[T any](ctx context.Context, c *Client, method string, fn func() (T, error)) (T, error) {
	var result T

	start := time.Now()
	RPCMethodInc(method)

	err := retryWithBackoff(ctx, c.retry, method, func() error {
		var err error
		result, err = fn()
		return err
	})

	RPCMethodDuration(method, time.Since(start))
	if err != nil {
		RPCMethodError(method, errorType(err))
		return result, err
	}

	return result, nil
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
