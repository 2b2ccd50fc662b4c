package interval

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	ratioRegexp   = regexp.MustCompile(`^([0-9.]+)/([0-9.]+)$`)
	edoStepRegexp = regexp.MustCompile(`^(-?[0-9]+)\\([0-9]+)$`)
	integerRegexp = regexp.MustCompile(`^[0-9]+$`)
)

// Parse converts a string to a Value. "n/d" and bare integers give exact
// ratios, decimals give cents (as in Scala files) and "s\n" gives s steps
// of n equal divisions of the octave, in cents.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if m := ratioRegexp.FindStringSubmatch(s); m != nil {
		if strings.Contains(m[0], ".") {
			num, err1 := strconv.ParseFloat(m[1], 64)
			den, err2 := strconv.ParseFloat(m[2], 64)
			if err1 != nil || err2 != nil {
				return Value{}, fmt.Errorf("%q: %w", s, ErrConversion)
			}
			if den == 0 {
				return Value{}, fmt.Errorf("%q: %w", s, ErrDivisionByZero)
			}
			if num <= 0 {
				return Value{}, fmt.Errorf("%q: not positive: %w", s, ErrConversion)
			}
			return NewCents(1200 * math.Log2(num/den)), nil
		}
		if strings.TrimLeft(m[2], "0") == "" {
			return Value{}, fmt.Errorf("%q: %w", s, ErrDivisionByZero)
		}
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return Value{}, fmt.Errorf("%q: %w", s, ErrConversion)
		}
		return FromRat(r)
	} else if integerRegexp.MatchString(s) {
		r, _ := new(big.Rat).SetString(s)
		return FromRat(r)
	} else if m := edoStepRegexp.FindStringSubmatch(s); m != nil {
		step, _ := strconv.Atoi(m[1])
		edo, _ := strconv.Atoi(m[2])
		if edo == 0 {
			return Value{}, fmt.Errorf("%q: %w", s, ErrDivisionByZero)
		}
		return NewCents(1200 * float64(step) / float64(edo)), nil
	} else if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return NewCents(f), nil
		}
	}
	return Value{}, fmt.Errorf("%q: %w", s, ErrConversion)
}

// ParseAll parses each string, failing on the first bad one.
func ParseAll(ss ...string) ([]Value, error) {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		v, err := Parse(s)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// MustParseAll is like ParseAll but panics on error. It is meant for
// literals.
func MustParseAll(ss ...string) []Value {
	vs, err := ParseAll(ss...)
	if err != nil {
		panic(err.Error())
	}
	return vs
}

// From converts a loosely typed degree. Integers and *big.Rat become
// ratios, floats become cents and strings go through Parse.
func From(x any) (Value, error) {
	switch x := x.(type) {
	case Value:
		return x, nil
	case int:
		return NewRatio(int64(x), 1)
	case int64:
		return NewRatio(x, 1)
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return Value{}, fmt.Errorf("%v: %w", x, ErrConversion)
		}
		return NewCents(x), nil
	case string:
		return Parse(x)
	case *big.Rat:
		return FromRat(x)
	}
	return Value{}, fmt.Errorf("%T: %w", x, ErrConversion)
}
