/*
Package coin implements the token amount arithmetic of the fee pipeline.

Amounts are unsigned 64 bit integers of token units. Percentages are
expressed in basis points where MaxBps represents 100%. Every
amount * bps / MaxBps product is computed with a 256 bit intermediate, so
the multiplication itself never overflows.
*/
package coin

import (
	"github.com/holiman/uint256"
	"github.com/tollgate-dao/tollgate/errors"
)

// MaxBps is the basis point value representing the whole amount.
const MaxBps = 10000

// MulDiv returns floor(a * b / d). ErrOverflow is returned when the result
// does not fit into 64 bits. Dividing by zero is a coding error.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.Wrap(errors.ErrHuman, "division by zero")
	}
	res := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	res.Div(res, uint256.NewInt(d))
	if !res.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d / %d", a, b, d)
	}
	return res.Uint64(), nil
}

// MulBps returns the given share of the amount, rounded down.
func MulBps(amount uint64, bps uint32) (uint64, error) {
	return MulDiv(amount, uint64(bps), MaxBps)
}

// Share is MulBps for basis points that are known to be valid. It panics
// if bps is greater than MaxBps.
func Share(amount uint64, bps uint32) uint64 {
	if bps > MaxBps {
		panic("basis points out of range")
	}
	res, err := MulBps(amount, bps)
	if err != nil {
		// Unreachable, a share of an amount is never greater than the
		// amount.
		panic(err)
	}
	return res
}

// Discount returns the amount reduced by the given discount.
func Discount(amount uint64, discountBps uint32) (uint64, error) {
	if discountBps > MaxBps {
		return 0, errors.Wrapf(errors.ErrInput, "discount of %d bps", discountBps)
	}
	return Share(amount, MaxBps-discountBps), nil
}

// Add returns a + b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// Sub returns a - b or ErrInsufficientAmount when b is greater than a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d is less than %d", a, b)
	}
	return a - b, nil
}

// Min returns the smaller of two amounts.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// ValidateBps returns an error if bps is greater than max.
func ValidateBps(bps, max uint32) error {
	if bps > max {
		return errors.Wrapf(errors.ErrConfiguration, "%d bps exceeds %d", bps, max)
	}
	return nil
}

// SumBps adds basis points and returns an error if the total exceeds
// MaxBps.
func SumBps(values ...uint32) (uint32, error) {
	var total uint64
	for _, v := range values {
		total += uint64(v)
	}
	if total > MaxBps {
		return 0, errors.Wrapf(errors.ErrConfiguration, "total of %d bps exceeds %d", total, MaxBps)
	}
	return uint32(total), nil
}
