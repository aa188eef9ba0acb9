package sqlstore

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/LendingIndexor/internal/lending"
)

func (t *Tx) LoadMarket(_ context.Context, id string) (lending.Lookup[lending.Market], error) {
	found, err := queryOne[lending.Market](t.tx, `SELECT * FROM markets WHERE id = ?`, id)
	if err != nil {
		return found, fmt.Errorf("failed to query market %s: %w", id, err)
	}
	return found, nil
}

func (t *Tx) StoreMarket(_ context.Context, m *lending.Market) error {
	if err := write(t.tx, insertOrReplace, tableMarkets, m); err != nil {
		return fmt.Errorf("failed to write market %s: %w", m.ID, err)
	}
	return nil
}

func (t *Tx) LoadAccount(_ context.Context, id string) (lending.Lookup[lending.Account], error) {
	found, err := queryOne[lending.Account](t.tx, `SELECT * FROM accounts WHERE id = ?`, id)
	if err != nil {
		return found, fmt.Errorf("failed to query account %s: %w", id, err)
	}
	return found, nil
}

func (t *Tx) StoreAccount(_ context.Context, a *lending.Account) error {
	if err := write(t.tx, insertOrReplace, tableAccounts, a); err != nil {
		return fmt.Errorf("failed to write account %s: %w", a.ID, err)
	}
	return nil
}

func (t *Tx) LoadPosition(_ context.Context, id string) (lending.Lookup[lending.Position], error) {
	found, err := queryOne[lending.Position](t.tx, `SELECT * FROM positions WHERE id = ?`, id)
	if err != nil {
		return found, fmt.Errorf("failed to query position %s: %w", id, err)
	}
	return found, nil
}

func (t *Tx) StorePosition(_ context.Context, p *lending.Position) error {
	if err := write(t.tx, insertOrReplace, tablePositions, p); err != nil {
		return fmt.Errorf("failed to write position %s: %w", p.ID, err)
	}
	return nil
}

func (t *Tx) LoadProtocol(_ context.Context) (lending.Lookup[lending.Protocol], error) {
	found, err := queryOne[lending.Protocol](t.tx, `SELECT * FROM protocol WHERE id = ?`, lending.ProtocolID)
	if err != nil {
		return found, fmt.Errorf("failed to query protocol: %w", err)
	}
	return found, nil
}

func (t *Tx) StoreProtocol(_ context.Context, p *lending.Protocol) error {
	if err := write(t.tx, insertOrReplace, tableProtocol, p); err != nil {
		return fmt.Errorf("failed to write protocol: %w", err)
	}
	return nil
}

func (t *Tx) LoadMarketToken(_ context.Context, symbol string) (lending.Lookup[lending.MarketToken], error) {
	if cached, err := t.store.marketTokens.Get(symbol); err == nil {
		cacheLookupInc(tableMarketTokens, true)
		token := cached.(lending.MarketToken) //nolint:forcetypeassert
		return lending.Found(&token), nil
	}
	cacheLookupInc(tableMarketTokens, false)

	found, err := queryOne[lending.MarketToken](t.tx, `SELECT * FROM market_tokens WHERE symbol = ?`, symbol)
	if err != nil {
		return found, fmt.Errorf("failed to query market token %s: %w", symbol, err)
	}
	if token, ok := found.Get(); ok {
		t.pendingTokens[symbol] = *token
	}
	return found, nil
}

// StoreMarketToken inserts the token unless its symbol is already taken.
func (t *Tx) StoreMarketToken(_ context.Context, token *lending.MarketToken) error {
	if err := write(t.tx, insertOrIgnore, tableMarketTokens, token); err != nil {
		return fmt.Errorf("failed to write market token %s: %w", token.Symbol, err)
	}
	return nil
}

func (t *Tx) LoadUnderlyingToken(_ context.Context, id string) (lending.Lookup[lending.UnderlyingToken], error) {
	if cached, err := t.store.underlyingTokens.Get(id); err == nil {
		cacheLookupInc(tableUnderlyingTokens, true)
		token := cached.(lending.UnderlyingToken) //nolint:forcetypeassert
		return lending.Found(&token), nil
	}
	cacheLookupInc(tableUnderlyingTokens, false)

	found, err := queryOne[lending.UnderlyingToken](t.tx, `SELECT * FROM underlying_tokens WHERE id = ?`, id)
	if err != nil {
		return found, fmt.Errorf("failed to query underlying token %s: %w", id, err)
	}
	if token, ok := found.Get(); ok {
		t.pendingUnderlying[id] = *token
	}
	return found, nil
}

// StoreUnderlyingToken inserts the token unless it already exists.
func (t *Tx) StoreUnderlyingToken(_ context.Context, token *lending.UnderlyingToken) error {
	if err := write(t.tx, insertOrIgnore, tableUnderlyingTokens, token); err != nil {
		return fmt.Errorf("failed to write underlying token %s: %w", token.ID, err)
	}
	return nil
}

// InsertRecord writes rec once. A record whose id already exists is left untouched.
func (t *Tx) InsertRecord(_ context.Context, rec lending.Record) error {
	table, ok := recordTables[rec.Kind()]
	if !ok {
		return fmt.Errorf("unknown record kind %q", rec.Kind())
	}

	if err := write(t.tx, insertOrIgnore, table, rec); err != nil {
		return fmt.Errorf("failed to write %s record %s: %w", rec.Kind(), rec.RecordID(), err)
	}
	return nil
}
