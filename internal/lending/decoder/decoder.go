// Package decoder turns raw money market logs into lending events.
package decoder

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/contracts"
)

// ErrUnknownEvent is returned for a log whose topic is not a money market event.
var ErrUnknownEvent = errors.New("unknown event")

// Source is the contract role that emits an event.
type Source int

const (
	SourcePoolToken Source = iota
	SourceComptroller
	SourcePriceOracle
	SourceUnderlying
)

func (s Source) String() string {
	switch s {
	case SourcePoolToken:
		return "pool-token"
	case SourceComptroller:
		return "comptroller"
	case SourcePriceOracle:
		return "price-oracle"
	case SourceUnderlying:
		return "underlying"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

type build func(m lending.Meta, a args) lending.Event

type binding struct {
	event  abi.Event
	source Source
	build  build
}

// Decoder decodes logs by their first topic.
type Decoder struct {
	bindings map[common.Hash]binding
}

// New creates a decoder for the events in abis.
func New(abis *contracts.Set) (*Decoder, error) {
	d := &Decoder{bindings: make(map[common.Hash]binding)}

	for _, group := range []struct {
		parsed   abi.ABI
		source   Source
		builders map[string]build
	}{
		{abis.PoolToken, SourcePoolToken, poolTokenEvents},
		{abis.Comptroller, SourceComptroller, comptrollerEvents},
		{abis.PriceOracle, SourcePriceOracle, oracleEvents},
		{abis.ERC20, SourceUnderlying, underlyingEvents},
	} {
		for name, fn := range group.builders {
			ev, ok := group.parsed.Events[name]
			if !ok {
				return nil, fmt.Errorf("event %s missing from %s abi", name, group.source)
			}
			if _, dup := d.bindings[ev.ID]; dup {
				return nil, fmt.Errorf("event %s of %s collides with another event topic", ev.Sig, group.source)
			}
			d.bindings[ev.ID] = binding{event: ev, source: group.source, build: fn}
		}
	}

	return d, nil
}

// Topics returns the topics of every event emitted by contracts of the given role.
func (d *Decoder) Topics(source Source) []common.Hash {
	topics := make([]common.Hash, 0)
	for id, b := range d.bindings {
		if b.source == source {
			topics = append(topics, id)
		}
	}
	return topics
}

// Source reports which contract role emits the event with the given topic.
func (d *Decoder) Source(topic common.Hash) (Source, bool) {
	b, ok := d.bindings[topic]
	return b.source, ok
}

// Decode decodes log into a lending event located at meta.
func (d *Decoder) Decode(log types.Log, meta lending.Meta) (lending.Event, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: log without topics", ErrUnknownEvent)
	}

	b, ok := d.bindings[log.Topics[0]]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", ErrUnknownEvent, log.Topics[0].Hex())
	}

	values, err := unpack(b.event, log)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s in tx %s: %w", b.event.Sig, log.TxHash.Hex(), err)
	}

	var argErr error
	ev := b.build(meta, args{event: b.event.Name, values: values, err: &argErr})
	if argErr != nil {
		return nil, fmt.Errorf("failed to decode %s in tx %s: %w", b.event.Sig, log.TxHash.Hex(), argErr)
	}

	return ev, nil
}

// unpack returns the event arguments in declaration order, indexed ones
// taken from the topics.
func unpack(ev abi.Event, log types.Log) ([]any, error) {
	data := make(map[string]any)
	if err := ev.Inputs.UnpackIntoMap(data, log.Data); err != nil {
		return nil, err
	}

	var indexed abi.Arguments
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(log.Topics)-1)
	}

	topics := make(map[string]any)
	if err := abi.ParseTopicsIntoMap(topics, indexed, log.Topics[1:]); err != nil {
		return nil, err
	}

	values := make([]any, len(ev.Inputs))
	for i, input := range ev.Inputs {
		if input.Indexed {
			values[i] = topics[input.Name]
		} else {
			values[i] = data[input.Name]
		}
	}

	return values, nil
}

// args gives typed positional access to unpacked values. The first type
// mismatch is kept in err and later accesses return zero values.
type args struct {
	event  string
	values []any
	err    *error
}

func (a args) fail(i int, want string) {
	if *a.err == nil {
		*a.err = fmt.Errorf("%s argument %d: expected %s, got %T", a.event, i, want, a.values[i])
	}
}

func (a args) address(i int) common.Address {
	v, ok := a.values[i].(common.Address)
	if !ok {
		a.fail(i, "address")
	}
	return v
}

func (a args) uint(i int) *big.Int {
	v, ok := a.values[i].(*big.Int)
	if !ok {
		a.fail(i, "uint256")
		return new(big.Int)
	}
	return v
}
