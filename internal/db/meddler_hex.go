package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("address", HexMeddler[common.Address]{decode: common.HexToAddress})
	meddler.Register("hash", HexMeddler[common.Hash]{decode: common.HexToHash})
}

type hexValue interface {
	common.Address | common.Hash
	Hex() string
}

// HexMeddler stores fixed size byte values as 0x prefixed hex text.
// Fields may be values or pointers; NULL reads as the zero value or nil.
type HexMeddler[T hexValue] struct {
	decode func(string) T
}

func (h HexMeddler[T]) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(sql.NullString), nil
}

func (h HexMeddler[T]) PostRead(fieldAddr, scanTarget interface{}) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case *T:
		var zero T
		*ptr = zero
		if ns.Valid {
			*ptr = h.decode(ns.String)
		}
	case **T:
		*ptr = nil
		if ns.Valid {
			v := h.decode(ns.String)
			*ptr = &v
		}
	default:
		return fmt.Errorf("unsupported field type %T", fieldAddr)
	}

	return nil
}

func (h HexMeddler[T]) PreWrite(field interface{}) (saveValue interface{}, err error) {
	switch v := field.(type) {
	case T:
		return v.Hex(), nil
	case *T:
		if v == nil {
			return nil, nil
		}
		return (*v).Hex(), nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", field)
	}
}
