package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newTestNode serves single JSON-RPC requests with respond. A nil reply with a
// non-zero status answers with that HTTP status instead.
func newTestNode(t *testing.T, respond func(call int, req rpcRequest) (reply map[string]any, status int)) (
	*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reply, status := respond(int(calls.Add(1)), req)
		if reply == nil {
			http.Error(w, "node busy", status)
			return
		}

		reply["jsonrpc"] = "2.0"
		reply["id"] = req.ID
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, fastRetry(4))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, &calls
}

func TestClient_CallContract(t *testing.T) {
	t.Parallel()

	market := common.HexToAddress("0x4ddc2d193948926d02f9b1fe9e1daa0718270ed5")
	msg := ethereum.CallMsg{To: &market, Data: common.FromHex("0x95d89b41")}

	t.Run("retries unavailable node", func(t *testing.T) {
		t.Parallel()

		client, calls := newTestNode(t, func(call int, _ rpcRequest) (map[string]any, int) {
			if call < 3 {
				return nil, http.StatusServiceUnavailable
			}
			return map[string]any{"result": "0x01"}, http.StatusOK
		})

		out, err := client.CallContract(context.Background(), msg, 100)
		require.NoError(t, err)
		require.Equal(t, []byte{1}, out)
		require.Equal(t, int32(3), calls.Load())
	})

	t.Run("revert is not retried", func(t *testing.T) {
		t.Parallel()

		client, calls := newTestNode(t, func(int, rpcRequest) (map[string]any, int) {
			return map[string]any{"error": map[string]any{
				"code":    3,
				"message": "execution reverted",
				"data":    "0x",
			}}, http.StatusOK
		})

		_, err := client.CallContract(context.Background(), msg, 100)
		require.True(t, IsRevertError(err))
		require.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_GetLogsTooManyResults(t *testing.T) {
	t.Parallel()

	client, calls := newTestNode(t, func(int, rpcRequest) (map[string]any, int) {
		return map[string]any{"error": map[string]any{
			"code":    -32005,
			"message": "query returned more than 10000 results",
			"data":    "Query returned more than 10000 results. Try with this block range [0x10, 0x20].",
		}}, http.StatusOK
	})

	_, err := client.GetLogs(context.Background(), ethereum.FilterQuery{
		FromBlock: big.NewInt(1),
		ToBlock:   big.NewInt(1000),
	})
	ok, data := IsTooManyResultsError(err)
	require.True(t, ok)
	require.Equal(t, int32(1), calls.Load())

	from, to, ok := ParseSuggestedBlockRange(data)
	require.True(t, ok)
	require.Equal(t, uint64(0x10), from)
	require.Equal(t, uint64(0x20), to)
}
