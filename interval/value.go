// Package interval implements interval values that are either exact
// frequency ratios or logarithmic cents.
package interval

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// Kind tags the numeric domain of a Value.
type Kind uint8

const (
	Ratio Kind = iota
	Cents
)

// Epsilon is the absolute tolerance, in cents, under which two cents
// values are considered equal.
const Epsilon = 1e-6

var (
	// ErrConversion indicates input that is neither a rational nor a float.
	ErrConversion = errors.New("interval: cannot convert to rational or float")
	// ErrDivisionByZero indicates a zero denominator or a zero-sized equave.
	ErrDivisionByZero = errors.New("interval: division by zero")
)

var ratOne = big.NewRat(1, 1)

func (k Kind) String() string {
	switch k {
	case Ratio:
		return "ratio"
	case Cents:
		return "cents"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an interval measured either as an exact positive ratio or in
// cents. The zero Value is the unison ratio 1/1. Values are immutable.
type Value struct {
	kind  Kind
	rat   *big.Rat // never mutated after construction, nil means 1/1
	cents float64
}

// NewRatio returns the ratio num/den.
func NewRatio(num, den int64) (Value, error) {
	if den == 0 {
		return Value{}, fmt.Errorf("ratio %d/%d: %w", num, den, ErrDivisionByZero)
	}
	return FromRat(big.NewRat(num, den))
}

// FromRat returns a ratio Value holding a copy of r, which must be positive.
func FromRat(r *big.Rat) (Value, error) {
	if r == nil || r.Sign() <= 0 {
		return Value{}, fmt.Errorf("ratio %v: not positive: %w", r, ErrConversion)
	}
	return Value{kind: Ratio, rat: new(big.Rat).Set(r)}, nil
}

// NewCents returns a cents Value.
func NewCents(c float64) Value {
	return Value{kind: Cents, cents: c}
}

// Identity returns the unison of the given kind: 1/1 or 0 cents.
func Identity(k Kind) Value {
	if k == Cents {
		return NewCents(0)
	}
	return Value{kind: Ratio}
}

// DefaultEquave returns the octave of the given kind: 2/1 or 1200 cents.
func DefaultEquave(k Kind) Value {
	if k == Cents {
		return NewCents(1200)
	}
	return Value{kind: Ratio, rat: big.NewRat(2, 1)}
}

// Kind reports the numeric domain of v.
func (v Value) Kind() Kind {
	return v.kind
}

// return the backing rational, treating nil as unison
func (v Value) r() *big.Rat {
	if v.rat == nil {
		return ratOne
	}
	return v.rat
}

// Rat returns a copy of the exact ratio, or nil for a cents Value.
func (v Value) Rat() *big.Rat {
	if v.kind != Ratio {
		return nil
	}
	return new(big.Rat).Set(v.r())
}

// Cents returns the size of v in cents, converting ratios with 1200*log2.
func (v Value) Cents() float64 {
	if v.kind == Cents {
		return v.cents
	}
	f, _ := v.r().Float64()
	return 1200 * math.Log2(f)
}

// Float returns the frequency multiplier of v.
func (v Value) Float() float64 {
	if v.kind == Cents {
		return math.Exp2(v.cents / 1200)
	}
	f, _ := v.r().Float64()
	return f
}

// ToCents returns v expressed in cents.
func (v Value) ToCents() Value {
	return NewCents(v.Cents())
}

// ToRatio returns v expressed as a ratio. Cents are converted through
// 2^(c/1200), so the result is the rational nearest the float multiplier.
func (v Value) ToRatio() Value {
	if v.kind == Ratio {
		return v
	}
	r := new(big.Rat).SetFloat64(v.Float())
	if r == nil || r.Sign() <= 0 {
		return Identity(Ratio)
	}
	return Value{kind: Ratio, rat: r}
}

// As converts v to kind k.
func (v Value) As(k Kind) Value {
	if k == Cents {
		return v.ToCents()
	}
	return v.ToRatio()
}

// IsIdentity reports whether v is a unison.
func (v Value) IsIdentity() bool {
	if v.kind == Cents {
		return math.Abs(v.cents) < Epsilon
	}
	return v.r().Cmp(ratOne) == 0
}

// Compose stacks two intervals: ratios multiply, cents add. A mixed pair
// is composed in cents.
func (v Value) Compose(other Value) Value {
	if v.kind == Ratio && other.kind == Ratio {
		return Value{kind: Ratio, rat: new(big.Rat).Mul(v.r(), other.r())}
	}
	return NewCents(v.Cents() + other.Cents())
}

// Difference returns the interval from other up to v: ratios divide,
// cents subtract. A mixed pair is measured in cents.
func (v Value) Difference(other Value) Value {
	if v.kind == Ratio && other.kind == Ratio {
		return Value{kind: Ratio, rat: new(big.Rat).Quo(v.r(), other.r())}
	}
	return NewCents(v.Cents() - other.Cents())
}

// Inverse returns the negated interval (not an equave inversion).
func (v Value) Inverse() Value {
	if v.kind == Cents {
		return NewCents(-v.cents)
	}
	return Value{kind: Ratio, rat: new(big.Rat).Inv(v.r())}
}

// Pow returns v stacked n times; negative n stacks the inverse.
func (v Value) Pow(n int) Value {
	if v.kind == Cents {
		return NewCents(v.cents * float64(n))
	}
	r := v.r()
	num, den := r.Num(), r.Denom()
	if n < 0 {
		num, den, n = den, num, -n
	}
	e := big.NewInt(int64(n))
	num = new(big.Int).Exp(num, e, nil)
	den = new(big.Int).Exp(den, e, nil)
	return Value{kind: Ratio, rat: new(big.Rat).SetFrac(num, den)}
}

// Equal compares exactly for two ratios and within Epsilon cents
// otherwise.
func (v Value) Equal(other Value) bool {
	if v.kind == Ratio && other.kind == Ratio {
		return v.r().Cmp(other.r()) == 0
	}
	return math.Abs(v.Cents()-other.Cents()) < Epsilon
}

// Cmp orders two values by size, returning -1, 0 or +1. Values that are
// Equal compare as 0.
func (v Value) Cmp(other Value) int {
	if v.kind == Ratio && other.kind == Ratio {
		return v.r().Cmp(other.r())
	}
	d := v.Cents() - other.Cents()
	switch {
	case math.Abs(d) < Epsilon:
		return 0
	case d < 0:
		return -1
	}
	return 1
}

// Reduce returns v transposed by whole equaves into [identity, equave),
// together with the number of equaves removed. The equave must be larger
// than a unison.
func (v Value) Reduce(equave Value) (Value, int, error) {
	size := equave.Cents()
	if size < Epsilon {
		return Value{}, 0, fmt.Errorf("reduce %v by %v: %w", v, equave, ErrDivisionByZero)
	}
	shift := int(math.Floor(v.Cents() / size))
	result := v.Compose(equave.Pow(-shift))
	// float estimate can be off by one next to an equave boundary
	identity := Identity(result.kind)
	for result.Cmp(identity) < 0 {
		result = result.Compose(equave)
		shift--
	}
	for result.Cmp(equave) >= 0 {
		result = result.Difference(equave)
		shift++
	}
	return result, shift, nil
}

// String returns a parseable representation of v.
func (v Value) String() string {
	if v.kind == Cents {
		return fmt.Sprintf("%f", v.cents)
	}
	r := v.r()
	return fmt.Sprintf("%s/%s", r.Num(), r.Denom())
}
