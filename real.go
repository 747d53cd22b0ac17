package emal

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// realPrec is the mantissa precision of Real operands, in bits.
const realPrec = 128

// Real is a floating-point operand type for Evaluate, backed by big.Float.
// It trades the exactness of Number for transcendental speed. The zero
// value is 0.
type Real struct {
	x *big.Float
}

// NewReal creates a Real with value v.
func NewReal(v *big.Float) Real {
	return Real{new(big.Float).SetPrec(realPrec).Set(v)}
}

// RealFromFloat64 creates a Real with value v.
func RealFromFloat64(v float64) Real {
	return Real{new(big.Float).SetPrec(realPrec).SetFloat64(v)}
}

// val returns the backing float, mapping the zero value to 0.
func (r Real) val() *big.Float {
	if r.x == nil {
		return new(big.Float).SetPrec(realPrec)
	}
	return r.x
}

// Float returns a copy of r's value.
func (r Real) Float() *big.Float {
	return new(big.Float).Copy(r.val())
}

// Add returns r + o.
func (r Real) Add(o Real) Real {
	return Real{new(big.Float).SetPrec(realPrec).Add(r.val(), o.val())}
}

// Sub returns r - o.
func (r Real) Sub(o Real) Real {
	return Real{new(big.Float).SetPrec(realPrec).Sub(r.val(), o.val())}
}

// Mul returns r × o.
func (r Real) Mul(o Real) Real {
	return Real{new(big.Float).SetPrec(realPrec).Mul(r.val(), o.val())}
}

// Div returns r / o. Dividing zero by zero or infinity by infinity is a
// DomainError; big.Float panics on those.
func (r Real) Div(o Real) (Real, error) {
	x, y := r.val(), o.val()
	if (x.Sign() == 0 && y.Sign() == 0) || (x.IsInf() && y.IsInf()) {
		return Real{}, &DomainError{Func: "/", Value: y.String()}
	}
	return Real{new(big.Float).SetPrec(realPrec).Quo(x, y)}, nil
}

// Log10 returns the base-10 logarithm of r.
func (r Real) Log10() (Real, error) {
	v := r.val()
	if v.Sign() <= 0 {
		return Real{}, &DomainError{Func: "log", Value: v.String()}
	}
	out := new(big.Float).SetPrec(realPrec)
	bigfloat.Log(out, v)
	den := new(big.Float).SetPrec(realPrec).SetInt64(10)
	bigfloat.Log(den, den)
	return Real{out.Quo(out, den)}, nil
}

// Max returns the larger of r and o.
func (r Real) Max(o Real) Real {
	if r.val().Cmp(o.val()) >= 0 {
		return r
	}
	return o
}

// Min returns the smaller of r and o.
func (r Real) Min(o Real) Real {
	if r.val().Cmp(o.val()) <= 0 {
		return r
	}
	return o
}

// FromNumber realizes a decimal literal as a Real.
func (Real) FromNumber(n Number) (Real, error) {
	return Real{new(big.Float).SetPrec(realPrec).SetRat(n.Rat())}, nil
}
