package lending

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unsupportedEvent struct {
	Meta
}

func TestNewEngine_InvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{name: "zero blocks per year", modify: func(p *Params) { p.BlocksPerYear = 0 }},
		{name: "missing reference market", modify: func(p *Params) { p.ReferenceMarket = common.Address{} }},
		{name: "native is reference", modify: func(p *Params) { p.NativeMarket = p.ReferenceMarket }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := DefaultParams()
			tt.modify(&params)

			_, err := NewEngine(newTestView(t), params, logger.NewNopLogger())
			require.Error(t, err)
		})
	}
}

func TestEngine_ApplyRejectsOutOfOrderEvents(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	engine := newTestEngine(t, newTestView(t))
	ctx := context.Background()

	mint := func(meta Meta) Event {
		return &Mint{Meta: meta, Minter: aliceAddress, MintAmount: big.NewInt(1), MintTokens: big.NewInt(1)}
	}

	require.True(t, engine.Cursor().IsZero())
	require.NoError(t, engine.Apply(ctx, repo, mint(metaAt(daiMarket, 100, 2, 5))))
	require.False(t, engine.Cursor().IsZero())

	tests := []struct {
		name string
		meta Meta
	}{
		{name: "same position", meta: metaAt(daiMarket, 100, 2, 5)},
		{name: "earlier log", meta: metaAt(daiMarket, 100, 2, 4)},
		{name: "earlier transaction", meta: metaAt(daiMarket, 100, 1, 9)},
		{name: "earlier block", meta: metaAt(daiMarket, 99, 7, 9)},
	}

	for _, tt := range tests {
		err := engine.Apply(ctx, repo, mint(tt.meta))
		require.ErrorIs(t, err, ErrOutOfOrder, tt.name)
	}

	assert.Equal(t, 1, repo.recordCount(RecordMint))
	assert.Equal(t, Cursor{BlockNumber: 100, TxIndex: 2, BlockLogIndex: 5, valid: true}, engine.Cursor())

	require.NoError(t, engine.Apply(ctx, repo, mint(metaAt(daiMarket, 100, 2, 6))))
	require.NoError(t, engine.Apply(ctx, repo, mint(metaAt(daiMarket, 100, 3, 7))))
	require.NoError(t, engine.Apply(ctx, repo, mint(metaAt(daiMarket, 101, 0, 0))))
	assert.Equal(t, 4, repo.recordCount(RecordMint))
}

func TestEngine_Rewind(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	engine := newTestEngine(t, newTestView(t))
	ctx := context.Background()

	require.NoError(t, engine.Apply(ctx, repo, &NewMaxAssets{Meta: metaAt(oracleAddress, 100, 0, 0), NewMaxAssets: big.NewInt(1)}))
	checkpoint := engine.Cursor()

	require.NoError(t, engine.Apply(ctx, repo, &NewMaxAssets{Meta: metaAt(oracleAddress, 105, 0, 0), NewMaxAssets: big.NewInt(2)}))

	engine.Rewind(checkpoint)
	assert.Equal(t, checkpoint, engine.Cursor())

	require.NoError(t, engine.Apply(ctx, repo, &NewMaxAssets{Meta: metaAt(oracleAddress, 101, 0, 0), NewMaxAssets: big.NewInt(3)}))
	requireDecimal(t, "3", repo.protocol.MaxAssets)
}

func TestEngine_ApplyUnsupportedEvent(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, newTestView(t))

	err := engine.Apply(context.Background(), newMemRepo(), &unsupportedEvent{Meta: metaAt(daiMarket, 1, 0, 0)})
	require.ErrorContains(t, err, "unsupported event type")
}

func TestEngine_AuditReportsMissingTransfer(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	params := DefaultParams()
	params.FallbackOracle = oracleAddress
	params.AuditTransfers = true

	engine, err := NewEngine(newTestView(t), params, logger.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, engine.auditor)

	// the auditor only reports, the projection is unaffected
	require.NoError(t, engine.Apply(context.Background(), repo,
		&Mint{Meta: metaAt(daiMarket, 100, 0, 0), Minter: aliceAddress, MintAmount: exp(1, 18), MintTokens: exp(1, 8)}))
	engine.Flush()

	assert.Equal(t, 1, repo.recordCount(RecordMint))
	assert.Empty(t, engine.auditor.expected)
}
