package types

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

type heads struct {
	finalized, safe, latest uint64
	err                     error
}

func (h heads) header(n uint64) (*types.Header, error) {
	if h.err != nil {
		return nil, h.err
	}
	return &types.Header{Number: new(big.Int).SetUint64(n)}, nil
}

func (h heads) GetFinalizedBlockHeader(context.Context) (*types.Header, error) {
	return h.header(h.finalized)
}

func (h heads) GetSafeBlockHeader(context.Context) (*types.Header, error) { return h.header(h.safe) }

func (h heads) GetLatestBlockHeader(context.Context) (*types.Header, error) { return h.header(h.latest) }

func TestParseBlockFinality(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]BlockFinality{
		"finalized":  FinalityFinalized,
		" Safe ":     FinalitySafe,
		"LATEST":     FinalityLatest,
		"pending":    "",
		"":           "",
		"finalised ": "",
	} {
		got, err := ParseBlockFinality(in)
		if want == "" {
			require.Error(t, err, in)
			continue
		}
		require.NoError(t, err, in)
		require.Equal(t, want, got)
		require.True(t, got.IsValid())
	}
}

func TestBlockFinality_FinalBlock(t *testing.T) {
	t.Parallel()

	src := heads{finalized: 100, safe: 120, latest: 140}
	ctx := context.Background()

	tests := []struct {
		name     string
		finality BlockFinality
		lag      uint64
		want     uint64
	}{
		{name: "finalized ignores lag", finality: FinalityFinalized, lag: 10, want: 100},
		{name: "safe", finality: FinalitySafe, want: 120},
		{name: "latest with lag", finality: FinalityLatest, lag: 12, want: 128},
		{name: "latest lag beyond head", finality: FinalityLatest, lag: 500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.finality.FinalBlock(ctx, src, tt.lag)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := BlockFinality("pending").FinalBlock(ctx, src, 0)
	require.ErrorContains(t, err, "invalid finality mode")

	_, err = FinalityFinalized.FinalBlock(ctx, heads{err: errors.New("unsupported block tag")}, 0)
	require.ErrorContains(t, err, "failed to get finalized block header")
}
