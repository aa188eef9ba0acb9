// Package contracts holds the ABIs of the money market contracts: pool tokens,
// the comptroller, the price oracle and ERC20 underlying tokens.
package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"maps"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DefaultPoolTokenMarker is the marker method every pool token exposes.
const DefaultPoolTokenMarker = "isCToken"

//go:embed abi/*.json
var abiFiles embed.FS

// Set is the parsed ABI of every contract the indexer talks to.
type Set struct {
	PoolToken   abi.ABI
	Comptroller abi.ABI
	PriceOracle abi.ABI
	ERC20       abi.ABI
	// ERC20Bytes32 covers tokens that return symbol and name as bytes32.
	ERC20Bytes32 abi.ABI
}

// Load parses the embedded ABIs. Events are renamed according to aliases,
// which maps a canonical event name (e.g. "Mint") to the name the deployment
// actually emits (e.g. "MintToken"). Renaming changes the event topic but not
// its arguments.
func Load(aliases map[string]string) (*Set, error) {
	var (
		set Set
		err error
	)

	for file, dst := range map[string]*abi.ABI{
		"pool_token.json":    &set.PoolToken,
		"comptroller.json":   &set.Comptroller,
		"price_oracle.json":  &set.PriceOracle,
		"erc20.json":         &set.ERC20,
		"erc20_bytes32.json": &set.ERC20Bytes32,
	} {
		if *dst, err = parse(file, aliases); err != nil {
			return nil, err
		}
	}

	return &set, nil
}

func parse(file string, aliases map[string]string) (abi.ABI, error) {
	raw, err := abiFiles.ReadFile("abi/" + file)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to read abi %s: %w", file, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse abi %s: %w", file, err)
	}

	if len(aliases) == 0 {
		return parsed, nil
	}

	events := make(map[string]abi.Event, len(parsed.Events))
	for name, ev := range parsed.Events {
		if alias, ok := aliases[ev.RawName]; ok && alias != "" {
			ev = abi.NewEvent(ev.Name, alias, ev.Anonymous, ev.Inputs)
		}
		events[name] = ev
	}
	parsed.Events = events

	return parsed, nil
}

// WithMarker returns a copy of the pool token ABI with the capability marker
// registered under method. The marker takes no arguments and returns a bool.
func WithMarker(poolToken abi.ABI, method string) (abi.ABI, error) {
	boolType, err := abi.NewType("bool", "", nil)
	if err != nil {
		return abi.ABI{}, err
	}

	methods := maps.Clone(poolToken.Methods)
	methods[method] = abi.NewMethod(method, method, abi.Function, "view", false, false,
		nil, abi.Arguments{{Type: boolType}})
	poolToken.Methods = methods

	return poolToken, nil
}
