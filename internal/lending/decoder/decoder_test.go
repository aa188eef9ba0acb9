package decoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/contracts"
	"github.com/stretchr/testify/require"
)

var (
	market  = common.HexToAddress("0x1d8eb5a97ce0b8812d7e17893018467a47e2f7d9")
	alice   = common.HexToAddress("0xa11ce00000000000000000000000000000000001")
	bob     = common.HexToAddress("0xb0b0000000000000000000000000000000000002")
	txHash  = common.HexToHash("0xabc")
	logMeta = lending.Meta{Address: market, TxHash: txHash, LogIndex: 1, BlockNumber: 42}
)

func newTestDecoder(t *testing.T, aliases map[string]string) (*Decoder, *contracts.Set) {
	t.Helper()

	abis, err := contracts.Load(aliases)
	require.NoError(t, err)

	d, err := New(abis)
	require.NoError(t, err)

	return d, abis
}

// makeLog encodes values as a log of the named event emitted by source.
func makeLog(t *testing.T, set *contracts.Set, source Source, name string, values ...any) types.Log {
	t.Helper()

	ev := set.PoolToken.Events[name]
	switch source {
	case SourceComptroller:
		ev = set.Comptroller.Events[name]
	case SourcePriceOracle:
		ev = set.PriceOracle.Events[name]
	case SourceUnderlying:
		ev = set.ERC20.Events[name]
	}

	topics := []common.Hash{ev.ID}
	var data []any
	for i, input := range ev.Inputs {
		if input.Indexed {
			addr, ok := values[i].(common.Address)
			require.True(t, ok)
			topics = append(topics, common.BytesToHash(addr.Bytes()))
			continue
		}
		data = append(data, values[i])
	}

	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)

	return types.Log{Address: market, Topics: topics, Data: packed, TxHash: txHash}
}

func TestDecode_PoolTokenEvents(t *testing.T) {
	t.Parallel()

	d, abis := newTestDecoder(t, nil)

	tests := []struct {
		name   string
		event  string
		values []any
		want   lending.Event
	}{
		{
			name:   "mint",
			event:  "Mint",
			values: []any{alice, big.NewInt(100), big.NewInt(5000)},
			want: &lending.Mint{Meta: logMeta, Minter: alice,
				MintAmount: big.NewInt(100), MintTokens: big.NewInt(5000)},
		},
		{
			name:   "repay",
			event:  "RepayBorrow",
			values: []any{alice, bob, big.NewInt(1), big.NewInt(2), big.NewInt(3)},
			want: &lending.RepayBorrow{Meta: logMeta, Payer: alice, Borrower: bob,
				RepayAmount: big.NewInt(1), AccountBorrows: big.NewInt(2), TotalBorrows: big.NewInt(3)},
		},
		{
			name:   "liquidate",
			event:  "LiquidateBorrow",
			values: []any{alice, bob, big.NewInt(7), market, big.NewInt(9)},
			want: &lending.LiquidateBorrow{Meta: logMeta, Liquidator: alice, Borrower: bob,
				RepayAmount: big.NewInt(7), PoolTokenCollateral: market, SeizeTokens: big.NewInt(9)},
		},
		{
			name:   "transfer with indexed parties",
			event:  "Transfer",
			values: []any{alice, bob, big.NewInt(25)},
			want:   &lending.Transfer{Meta: logMeta, From: alice, To: bob, Amount: big.NewInt(25)},
		},
		{
			name:   "accrue interest",
			event:  "AccrueInterest",
			values: []any{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
			want: &lending.AccrueInterest{Meta: logMeta,
				InterestAccumulated: big.NewInt(1), BorrowIndex: big.NewInt(2), TotalBorrows: big.NewInt(3)},
		},
		{
			name:   "accrue interest with cash prior",
			event:  "AccrueInterest0",
			values: []any{big.NewInt(99), big.NewInt(1), big.NewInt(2), big.NewInt(3)},
			want: &lending.AccrueInterest{Meta: logMeta,
				InterestAccumulated: big.NewInt(1), BorrowIndex: big.NewInt(2), TotalBorrows: big.NewInt(3)},
		},
		{
			name:   "interest rate model",
			event:  "NewMarketInterestRateModel",
			values: []any{alice, bob},
			want:   &lending.NewInterestRateModel{Meta: logMeta, OldInterestRateModel: alice, NewInterestRateModel: bob},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := d.Decode(makeLog(t, abis, SourcePoolToken, tt.event, tt.values...), logMeta)
			require.NoError(t, err)
			require.Equal(t, tt.want, ev)
		})
	}
}

func TestDecode_OtherSources(t *testing.T) {
	t.Parallel()

	d, abis := newTestDecoder(t, nil)

	ev, err := d.Decode(makeLog(t, abis, SourceComptroller, "DistributedSupplierComp",
		market, alice, big.NewInt(15), big.NewInt(1e18)), logMeta)
	require.NoError(t, err)
	require.Equal(t, &lending.DistributedSupplierIncentive{Meta: logMeta, PoolToken: market, Supplier: alice,
		Delta: big.NewInt(15), SupplyIndex: big.NewInt(1e18)}, ev)

	ev, err = d.Decode(makeLog(t, abis, SourceComptroller, "NewCollateralFactor",
		market, big.NewInt(5e17), big.NewInt(75e16)), logMeta)
	require.NoError(t, err)
	require.Equal(t, &lending.NewCollateralFactor{Meta: logMeta, PoolToken: market,
		OldCollateralFactorMantissa: big.NewInt(5e17), NewCollateralFactorMantissa: big.NewInt(75e16)}, ev)

	ev, err = d.Decode(makeLog(t, abis, SourcePriceOracle, "PricePosted",
		market, big.NewInt(1), big.NewInt(2), big.NewInt(3)), logMeta)
	require.NoError(t, err)
	require.Equal(t, &lending.PricePosted{Meta: logMeta, Asset: market, PreviousPriceMantissa: big.NewInt(1),
		RequestedPriceMantissa: big.NewInt(2), NewPriceMantissa: big.NewInt(3)}, ev)

	ev, err = d.Decode(makeLog(t, abis, SourceUnderlying, "Approval", alice, market, big.NewInt(10)), logMeta)
	require.NoError(t, err)
	require.Equal(t, &lending.Approval{Meta: logMeta, Owner: alice, Spender: market, Value: big.NewInt(10)}, ev)
}

func TestDecode_Aliases(t *testing.T) {
	t.Parallel()

	d, abis := newTestDecoder(t, map[string]string{"Borrow": "BorrowToken"})

	log := makeLog(t, abis, SourcePoolToken, "Borrow", bob, big.NewInt(1), big.NewInt(2), big.NewInt(3))
	require.Equal(t, crypto.Keccak256Hash([]byte("BorrowToken(address,uint256,uint256,uint256)")), log.Topics[0])

	ev, err := d.Decode(log, logMeta)
	require.NoError(t, err)
	require.IsType(t, &lending.Borrow{}, ev)

	source, ok := d.Source(log.Topics[0])
	require.True(t, ok)
	require.Equal(t, SourcePoolToken, source)

	_, ok = d.Source(crypto.Keccak256Hash([]byte("Borrow(address,uint256,uint256,uint256)")))
	require.False(t, ok)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	d, abis := newTestDecoder(t, nil)

	_, err := d.Decode(types.Log{}, logMeta)
	require.ErrorIs(t, err, ErrUnknownEvent)

	_, err = d.Decode(types.Log{Topics: []common.Hash{common.HexToHash("0x1234")}}, logMeta)
	require.ErrorIs(t, err, ErrUnknownEvent)

	truncated := makeLog(t, abis, SourcePoolToken, "Mint", alice, big.NewInt(1), big.NewInt(2))
	truncated.Data = truncated.Data[:40]
	_, err = d.Decode(truncated, logMeta)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnknownEvent)

	missingTopic := makeLog(t, abis, SourcePoolToken, "Transfer", alice, bob, big.NewInt(1))
	missingTopic.Topics = missingTopic.Topics[:2]
	_, err = d.Decode(missingTopic, logMeta)
	require.Error(t, err)
}

func TestTopics(t *testing.T) {
	t.Parallel()

	d, _ := newTestDecoder(t, nil)

	require.Len(t, d.Topics(SourcePoolToken), len(poolTokenEvents))
	require.Len(t, d.Topics(SourceComptroller), len(comptrollerEvents))
	require.Len(t, d.Topics(SourcePriceOracle), 1)
	require.Len(t, d.Topics(SourceUnderlying), 1)
}
