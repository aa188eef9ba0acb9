// Package mantissa converts the protocol's fixed-point integers into decimals.
//
// Raw on-chain amounts are integers scaled by a power of ten. They must go
// through FromMantissa (or Div by a Scale) before they take part in any
// arithmetic, and every division truncates toward zero.
package mantissa

import (
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	// MantissaDecimals is the precision of the protocol's Exp values (rates, indexes, prices).
	MantissaDecimals = 18
	// PoolTokenDecimals is the precision of every pool token.
	PoolTokenDecimals = 8
	// IncentiveDecimals is the precision of the incentive emission rate.
	IncentiveDecimals = 6
)

var (
	ten = decimal.NewFromInt(10)

	scalesMu sync.RWMutex
	scales   = map[int32]decimal.Decimal{}

	// MantissaScale is 10^18.
	MantissaScale = Scale(MantissaDecimals)
	// PoolTokenScale is 10^8.
	PoolTokenScale = Scale(PoolTokenDecimals)
	// IncentiveScale is 10^6.
	IncentiveScale = Scale(IncentiveDecimals)
)

// Scale returns 10^decimals. The value is built by repeated multiplication so
// it never passes through a floating point power function.
func Scale(decimals int32) decimal.Decimal {
	scalesMu.RLock()
	s, ok := scales[decimals]
	scalesMu.RUnlock()
	if ok {
		return s
	}

	s = decimal.NewFromInt(1)
	for i := int32(0); i < decimals; i++ {
		s = s.Mul(ten)
	}

	scalesMu.Lock()
	scales[decimals] = s
	scalesMu.Unlock()

	return s
}

// Truncate drops every fractional digit past decimals. It never rounds up.
func Truncate(v decimal.Decimal, decimals int32) decimal.Decimal {
	return v.Truncate(decimals)
}

// Div divides a by b keeping precision fractional digits, truncating the rest.
// Division by zero yields zero.
func Div(a, b decimal.Decimal, precision int32) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	q, _ := a.QuoRem(b, precision)
	return q
}

// DivScale divides v by 10^decimals. The result is exact: dividing by a power
// of ten only adds fractional digits.
func DivScale(v decimal.Decimal, decimals int32) decimal.Decimal {
	return Div(v, Scale(decimals), fractionalDigits(v)+decimals)
}

// FromMantissa converts a raw integer into a decimal by dividing it by 10^decimals.
// A nil value converts to zero.
func FromMantissa(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return DivScale(decimal.NewFromBigInt(raw, 0), decimals)
}

// FromRaw wraps a raw integer without scaling it. Used for the fields the
// protocol stores as plain mantissas.
func FromRaw(raw *big.Int) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, 0)
}

func fractionalDigits(v decimal.Decimal) int32 {
	if exp := v.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}
