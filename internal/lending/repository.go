package lending

import "context"

// Repository is the storage the projection reads from and writes to.
//
// Load methods return an absent Lookup when the entity does not exist and an
// error only when the storage itself failed. Records are write-once:
// InsertRecord with an ID that already exists is a no-op.
type Repository interface {
	LoadMarket(ctx context.Context, id string) (Lookup[Market], error)
	StoreMarket(ctx context.Context, m *Market) error

	LoadAccount(ctx context.Context, id string) (Lookup[Account], error)
	StoreAccount(ctx context.Context, a *Account) error

	LoadPosition(ctx context.Context, id string) (Lookup[Position], error)
	StorePosition(ctx context.Context, p *Position) error

	LoadProtocol(ctx context.Context) (Lookup[Protocol], error)
	StoreProtocol(ctx context.Context, p *Protocol) error

	LoadMarketToken(ctx context.Context, symbol string) (Lookup[MarketToken], error)
	StoreMarketToken(ctx context.Context, t *MarketToken) error

	LoadUnderlyingToken(ctx context.Context, id string) (Lookup[UnderlyingToken], error)
	StoreUnderlyingToken(ctx context.Context, t *UnderlyingToken) error

	InsertRecord(ctx context.Context, r Record) error
}
