package lending

import (
	"errors"
	"fmt"
)

var (
	// ErrReverted is returned by a ContractView when the call reverted on chain.
	ErrReverted = errors.New("contract call reverted")

	// ErrPriceOracleUnknown is returned by a refresh when neither a governance
	// event nor the configuration named a price oracle.
	ErrPriceOracleUnknown = errors.New("price oracle address is unknown")

	// ErrOutOfOrder is returned when an event does not strictly follow the previous one.
	ErrOutOfOrder = errors.New("event applied out of order")
)

// RefreshError is a fatal failure of a market refresh. Nothing is persisted for
// the refresh that produced it.
type RefreshError struct {
	Market string
	Block  uint64
	Call   string
	Err    error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh of market %s at block %d failed on %s: %v", e.Market, e.Block, e.Call, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}
