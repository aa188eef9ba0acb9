package lending

import (
	"context"
	"math/big"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/mocks"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	daiMarket      = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	daiToken       = common.HexToAddress("0x00000000000000000000000000000000000000d2")
	wbtcMarket     = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	oracleAddress  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	aliceAddress   = common.HexToAddress("0x000000000000000000000000000000000000a11c")
	bobAddress     = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carolAddress   = common.HexToAddress("0x00000000000000000000000000000000000ca401")
	unknownAddress = common.HexToAddress("0x000000000000000000000000000000000000dead")
)

// memRepo is an in-memory Repository. Loads return copies so that a mutation
// is only visible after it was stored.
type memRepo struct {
	markets      map[string]Market
	accounts     map[string]Account
	positions    map[string]Position
	protocol     *Protocol
	marketTokens map[string]MarketToken
	underlying   map[string]UnderlyingToken
	records      map[RecordKind]map[string]Record
}

var _ Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		markets:      make(map[string]Market),
		accounts:     make(map[string]Account),
		positions:    make(map[string]Position),
		marketTokens: make(map[string]MarketToken),
		underlying:   make(map[string]UnderlyingToken),
		records:      make(map[RecordKind]map[string]Record),
	}
}

func load[T any](m map[string]T, id string) Lookup[T] {
	v, ok := m[id]
	if !ok {
		return Absent[T]()
	}
	return Found(&v)
}

func (r *memRepo) LoadMarket(_ context.Context, id string) (Lookup[Market], error) {
	return load(r.markets, id), nil
}

func (r *memRepo) StoreMarket(_ context.Context, m *Market) error {
	r.markets[m.ID] = *m
	return nil
}

func (r *memRepo) LoadAccount(_ context.Context, id string) (Lookup[Account], error) {
	return load(r.accounts, id), nil
}

func (r *memRepo) StoreAccount(_ context.Context, a *Account) error {
	r.accounts[a.ID] = *a
	return nil
}

func (r *memRepo) LoadPosition(_ context.Context, id string) (Lookup[Position], error) {
	found := load(r.positions, id)
	if p, ok := found.Get(); ok {
		p.TransactionHashes = slices.Clone(p.TransactionHashes)
		p.TransactionTimes = slices.Clone(p.TransactionTimes)
	}
	return found, nil
}

func (r *memRepo) StorePosition(_ context.Context, p *Position) error {
	stored := *p
	stored.TransactionHashes = slices.Clone(p.TransactionHashes)
	stored.TransactionTimes = slices.Clone(p.TransactionTimes)
	r.positions[p.ID] = stored
	return nil
}

func (r *memRepo) LoadProtocol(_ context.Context) (Lookup[Protocol], error) {
	if r.protocol == nil {
		return Absent[Protocol](), nil
	}
	p := *r.protocol
	return Found(&p), nil
}

func (r *memRepo) StoreProtocol(_ context.Context, p *Protocol) error {
	stored := *p
	r.protocol = &stored
	return nil
}

func (r *memRepo) LoadMarketToken(_ context.Context, symbol string) (Lookup[MarketToken], error) {
	return load(r.marketTokens, symbol), nil
}

func (r *memRepo) StoreMarketToken(_ context.Context, t *MarketToken) error {
	r.marketTokens[t.Symbol] = *t
	return nil
}

func (r *memRepo) LoadUnderlyingToken(_ context.Context, id string) (Lookup[UnderlyingToken], error) {
	return load(r.underlying, id), nil
}

func (r *memRepo) StoreUnderlyingToken(_ context.Context, t *UnderlyingToken) error {
	r.underlying[t.ID] = *t
	return nil
}

func (r *memRepo) InsertRecord(_ context.Context, rec Record) error {
	byID, ok := r.records[rec.Kind()]
	if !ok {
		byID = make(map[string]Record)
		r.records[rec.Kind()] = byID
	}
	if _, exists := byID[rec.RecordID()]; exists {
		return nil
	}
	byID[rec.RecordID()] = rec
	return nil
}

func (r *memRepo) market(t *testing.T, addr common.Address) Market {
	t.Helper()
	m, ok := r.markets[EntityID(addr)]
	require.True(t, ok, "market %s not stored", EntityID(addr))
	return m
}

func (r *memRepo) position(t *testing.T, market, account common.Address) Position {
	t.Helper()
	p, ok := r.positions[PositionID(EntityID(market), EntityID(account))]
	require.True(t, ok, "position %s/%s not stored", EntityID(market), EntityID(account))
	return p
}

func (r *memRepo) recordCount(kind RecordKind) int {
	return len(r.records[kind])
}

func (r *memRepo) record(t *testing.T, kind RecordKind, meta Meta) Record {
	t.Helper()
	rec, ok := r.records[kind][RecordID(meta)]
	require.True(t, ok, "%s record %s not stored", kind, RecordID(meta))
	return rec
}

// seedMarket stores a market that is already refreshed at block.
func (r *memRepo) seedMarket(addr common.Address, symbol string, decimals int32, block uint64) *Market {
	m := &Market{
		ID:                 EntityID(addr),
		Symbol:             symbol,
		Name:               "Bird " + symbol,
		UnderlyingDecimals: decimals,
		UnderlyingSymbol:   symbol[1:],
		ExchangeRate:       decimal.RequireFromString("0.02"),
		BorrowIndex:        decimal.RequireFromString("1.5"),
		RefreshBlockNumber: block,
		AccrualBlockNumber: block,
	}
	r.markets[m.ID] = *m
	return m
}

func (r *memRepo) seedAccount(addr common.Address) {
	r.accounts[EntityID(addr)] = Account{ID: EntityID(addr)}
}

func newTestEngine(t *testing.T, view ContractView) *Engine {
	t.Helper()

	params := DefaultParams()
	params.FallbackOracle = oracleAddress

	e, err := NewEngine(view, params, logger.NewNopLogger())
	require.NoError(t, err)

	return e
}

func newTestView(t *testing.T) *mocks.ContractView {
	return mocks.NewContractView(t)
}

// metaAt locates an event. The log index doubles as the block log index.
func metaAt(addr common.Address, block uint64, txIndex, logIndex uint) Meta {
	return Meta{
		Address:        addr,
		TxHash:         common.BigToHash(new(big.Int).SetUint64(block*1_000 + uint64(txIndex))),
		TxIndex:        txIndex,
		LogIndex:       logIndex,
		BlockLogIndex:  logIndex,
		BlockNumber:    block,
		BlockTimestamp: 1_600_000_000 + block*12,
	}
}

// exp returns v * 10^decimals as a big integer.
func exp(v int64, decimals int) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
