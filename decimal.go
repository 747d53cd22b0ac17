package emal

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an arbitrary-precision decimal: a signed integer magnitude and
// a non-negative count of digits right of the decimal point, so that
// value = magnitude × 10^-places. The zero value is 0. Numbers are
// immutable; every operation returns a new value.
type Number struct {
	mant   *big.Int
	places int
}

var (
	bigTwo = big.NewInt(2)
	bigTen = big.NewInt(10)
)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// mag returns the magnitude, mapping the zero value to 0.
func (n Number) mag() *big.Int {
	if n.mant == nil {
		return new(big.Int)
	}
	return n.mant
}

// NumberFromInt creates the Number with value v.
func NumberFromInt(v int64) Number {
	return Number{big.NewInt(v), 0}
}

// NumberFromDecimal converts a shopspring decimal. Positive exponents are
// folded into the magnitude so the place count stays non-negative.
func NumberFromDecimal(d decimal.Decimal) Number {
	exp := int(d.Exponent())
	mant := new(big.Int).Set(d.Coefficient())
	if exp >= 0 {
		if exp > 0 {
			mant.Mul(mant, pow10(exp))
		}
		return Number{mant, 0}
	}
	return Number{mant, -exp}
}

// Decimal converts n to a shopspring decimal with the same value.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(n.mag(), -int32(n.places))
}

// Rat returns the exact value of n as a rational.
func (n Number) Rat() *big.Rat {
	return new(big.Rat).SetFrac(n.mag(), pow10(n.places))
}

// Sign returns -1, 0 or 1 depending on the sign of n.
func (n Number) Sign() int {
	return n.mag().Sign()
}

// align returns both magnitudes scaled to the larger place count.
func align(a, b Number) (x, y *big.Int, places int) {
	x, y = a.mag(), b.mag()
	switch {
	case a.places < b.places:
		x = new(big.Int).Mul(x, pow10(b.places-a.places))
		return x, y, b.places
	case b.places < a.places:
		y = new(big.Int).Mul(y, pow10(a.places-b.places))
		return x, y, a.places
	}
	return x, y, a.places
}

// Cmp compares n and o, returning -1, 0 or 1.
func (n Number) Cmp(o Number) int {
	x, y, _ := align(n, o)
	return x.Cmp(y)
}

// Add returns n + o, aligned to the larger place count.
func (n Number) Add(o Number) Number {
	x, y, places := align(n, o)
	return Number{new(big.Int).Add(x, y), places}
}

// Sub returns n - o, aligned to the larger place count.
func (n Number) Sub(o Number) Number {
	x, y, places := align(n, o)
	return Number{new(big.Int).Sub(x, y), places}
}

// Mul returns n × o. The place counts add; no precision is lost.
func (n Number) Mul(o Number) Number {
	return Number{new(big.Int).Mul(n.mag(), o.mag()), n.places + o.places}
}

// divDigits is the fixed extra-precision budget of Div. Quotients are
// truncated beyond it.
const divDigits = 10

// Div returns n / o, truncated divDigits places beyond the aligned place
// count of the operands.
func (n Number) Div(o Number) (Number, error) {
	if o.mag().Sign() == 0 {
		return Number{}, &DomainError{Func: "/", Value: o.String()}
	}
	x, y, places := align(n, o)
	q := new(big.Int).Mul(x, pow10(divDigits+places))
	q.Quo(q, y)
	return Number{q, divDigits + places}, nil
}

// Max returns the larger of n and o.
func (n Number) Max(o Number) Number {
	if n.Cmp(o) >= 0 {
		return n
	}
	return o
}

// Min returns the smaller of n and o.
func (n Number) Min(o Number) Number {
	if n.Cmp(o) <= 0 {
		return n
	}
	return o
}

// FromNumber realizes a literal; for Number it is the identity.
func (Number) FromNumber(v Number) (Number, error) {
	return v, nil
}

// trunc reduces n to at most p decimal places, truncating toward zero.
func (n Number) trunc(p int) Number {
	if n.places <= p {
		return n
	}
	q := new(big.Int).Quo(n.mag(), pow10(n.places-p))
	return Number{q, p}
}

// normalize rescales a positive n to a single digit left of the decimal
// point, returning the shifted value and the applied decade shift.
func (n Number) normalize() (Number, int) {
	ndig := len(new(big.Int).Abs(n.mag()).String())
	return Number{n.mag(), ndig - 1}, ndig - 1 - n.places
}

// String renders n at the default two decimal places.
func (n Number) String() string {
	return n.Text(2)
}

// Text renders n with a single leading significant digit, decimals digits
// after a comma, and an e<k> exponent suffix unless k is zero. Rounding is
// half-up on the scaled integer, biased away from zero.
func (n Number) Text(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	mant := n.mag()
	if mant.Sign() == 0 {
		if decimals == 0 {
			return "0"
		}
		return "0," + strings.Repeat("0", decimals)
	}
	abs := new(big.Int).Abs(mant)
	ndig := len(abs.String())
	exp := ndig - 1 - n.places
	keep := decimals + 1
	r := abs
	switch drop := ndig - keep; {
	case drop > 0:
		p := pow10(drop)
		half := new(big.Int).Quo(p, bigTwo)
		r = new(big.Int).Add(abs, half)
		r.Quo(r, p)
		if len(r.String()) > keep {
			// Rounding carried into a new leading digit, e.g. 9,99 -> 10,0.
			r.Quo(r, bigTen)
			exp++
		}
	case drop < 0:
		r = new(big.Int).Mul(abs, pow10(-drop))
	}
	s := r.String()
	var b strings.Builder
	if mant.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteByte(s[0])
	if decimals > 0 {
		b.WriteByte(',')
		b.WriteString(s[1:])
	}
	if exp != 0 {
		b.WriteByte('e')
		b.WriteString(strconv.Itoa(exp))
	}
	return b.String()
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("emal: bad constant " + s)
	}
	return v
}

const (
	// logPlaces is the internal working precision of Log10.
	logPlaces = 32
	// logTerms is the length of the ln(1+x) series. Empirically
	// sufficient over [-0.3, 0.3) at logPlaces precision; pinned by the
	// accuracy tests, not proven.
	logTerms = 48
	// logReductions caps the squaring argument reduction.
	logReductions = 40
)

var (
	numOne = NumberFromInt(1)
	// invLn10 is 1/ln(10) to 40 places, the series scale constant.
	invLn10 = Number{mustBig("4342944819032518276511289189166050822944"), 40}
	// bandHigh and bandTurn bound the reduction band: a normalized value
	// below 1,3 is close enough to 1, and one at or above 7 is brought
	// into [0,7; 1) by one more decade shift.
	bandHigh = Number{big.NewInt(13), 1}
	bandTurn = Number{big.NewInt(7), 0}
)

// Log10 returns the base-10 logarithm of n without any floating-point
// intermediate. The argument is squared until its leading digits fall in
// [0,7; 1,3) after a decade shift, ln is taken there by an alternating
// power series scaled by 1/ln(10), and both reductions are undone on the
// result.
func (n Number) Log10() (Number, error) {
	if n.mag().Sign() <= 0 {
		return Number{}, &DomainError{Func: "log", Value: n.String()}
	}
	v := n
	shift, power := 0, 1
	var delta Number
	for i := 0; ; i++ {
		nv, s := v.normalize()
		shift += s
		if nv.Cmp(bandHigh) < 0 {
			delta = nv.Sub(numOne)
			break
		}
		if nv.Cmp(bandTurn) >= 0 {
			shift++
			nv = Number{nv.mag(), nv.places + 1}
			delta = nv.Sub(numOne)
			break
		}
		if i == logReductions {
			return Number{}, &DomainError{Func: "log", Value: n.String()}
		}
		v = nv.Mul(nv).trunc(logPlaces)
		power *= 2
		shift *= 2
	}
	// ln(1+x) = x - x²/2 + x³/3 - … for x = delta in [-0,3; 0,3).
	var sum Number
	pow := delta
	for k := 1; k <= logTerms; k++ {
		term, err := pow.Div(NumberFromInt(int64(k)))
		if err != nil {
			return Number{}, err
		}
		term = term.trunc(logPlaces)
		if k%2 == 1 {
			sum = sum.Add(term)
		} else {
			sum = sum.Sub(term)
		}
		pow = pow.Mul(delta).trunc(logPlaces)
	}
	lg := sum.Mul(invLn10).trunc(logPlaces)
	lg = lg.Add(NumberFromInt(int64(shift)))
	r, err := lg.Div(NumberFromInt(int64(power)))
	if err != nil {
		return Number{}, err
	}
	return r.trunc(logPlaces), nil
}

// Keys of the tokens produced by the numeric tokenizer.
const (
	keySign     = "sign"
	keyInteger  = "integer"
	keyFraction = "fraction"
	keyExpSign  = "esign"
	keyExponent = "exponent"
)

// dropPlus normalizes an explicit leading + away, so later stages only
// look for -.
func dropPlus(s string) string {
	if s == "+" {
		return ""
	}
	return s
}

// NumberTokenizer returns the configuration of the keyed machine that
// recognizes one numeric literal: sign, integer digits, optional decimal
// point (comma or dot) with fraction digits, and an optional e/E exponent.
// A comma or dot is consumed as a decimal point only when a digit follows.
func NumberTokenizer() *Config {
	return &Config{
		Start: numStart,
		Keyed: true,
		Transformers: map[string]func(string) string{
			keySign:    dropPlus,
			keyExpSign: dropPlus,
		},
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func numStart(m *Machine, r rune) StateFn {
	switch {
	case r == '+' || r == '-':
		m.OpenKeyed(keySign)
		m.Append()
		return numSign
	case isDigit(r):
		m.OpenKeyed(keyInteger)
		m.Append()
		return numInt
	}
	return m.Fail(&LexError{Text: m.Buffer(), Kind: "number", Col: m.Col()})
}

func numSign(m *Machine, r rune) StateFn {
	if !isDigit(r) {
		// A bare sign is not a literal.
		return m.Fail(&LexError{Text: m.Buffer(), Kind: "number", Col: m.Col()})
	}
	m.OpenKeyed(keyInteger)
	m.Append()
	return numInt
}

func numInt(m *Machine, r rune) StateFn {
	switch {
	case isDigit(r):
		m.Append()
		return numInt
	case r == ',' || r == '.':
		if p, ok := m.Peek(); ok && isDigit(p) {
			return numPoint
		}
	case r == 'e' || r == 'E':
		if p, ok := m.Peek(); ok && (isDigit(p) || p == '+' || p == '-') {
			return numExpMark
		}
	}
	m.Retain()
	return nil
}

func numPoint(m *Machine, r rune) StateFn {
	if !isDigit(r) {
		return m.Fail(&LexError{Text: m.Buffer(), Kind: "number", Col: m.Col()})
	}
	m.OpenKeyed(keyFraction)
	m.Append()
	return numFrac
}

func numFrac(m *Machine, r rune) StateFn {
	switch {
	case isDigit(r):
		m.Append()
		return numFrac
	case r == 'e' || r == 'E':
		if p, ok := m.Peek(); ok && (isDigit(p) || p == '+' || p == '-') {
			return numExpMark
		}
	}
	m.Retain()
	return nil
}

func numExpMark(m *Machine, r rune) StateFn {
	switch {
	case r == '+' || r == '-':
		m.OpenKeyed(keyExpSign)
		m.Append()
		return numExpSign
	case isDigit(r):
		m.OpenKeyed(keyExponent)
		m.Append()
		return numExp
	}
	return m.Fail(&LexError{Text: m.Buffer(), Kind: "number", Col: m.Col()})
}

func numExpSign(m *Machine, r rune) StateFn {
	if !isDigit(r) {
		return m.Fail(&LexError{Text: m.Buffer(), Kind: "number", Col: m.Col()})
	}
	m.OpenKeyed(keyExponent)
	m.Append()
	return numExp
}

func numExp(m *Machine, r rune) StateFn {
	if isDigit(r) {
		m.Append()
		return numExp
	}
	m.Retain()
	return nil
}

// maxExponent bounds literal exponents so a stray "1e999999999" cannot
// allocate a magnitude with a billion digits.
const maxExponent = 1 << 16

// ParseNumber parses one complete numeric literal.
func ParseNumber(s string) (Number, error) {
	m := NewMachine(NumberTokenizer())
	consumed, err := m.Run(s)
	if err != nil {
		return Number{}, err
	}
	if consumed != len(s) {
		return Number{}, &LexError{Text: s[consumed:], Kind: "number", Col: m.Col()}
	}
	return numberFromTokens(m.Tokens())
}

// numberFromTokens assembles a Number from the keyed tokens of the numeric
// tokenizer. The place count is the fraction length minus the exponent;
// the exponent only shifts the decimal point.
func numberFromTokens(toks []*Token) (Number, error) {
	var digits strings.Builder
	neg, eneg := false, false
	places, exp := 0, 0
	for _, t := range toks {
		switch t.Key {
		case keySign:
			neg = t.Text == "-"
		case keyInteger:
			digits.WriteString(t.Text)
		case keyFraction:
			digits.WriteString(t.Text)
			places = len(t.Text)
		case keyExpSign:
			eneg = t.Text == "-"
		case keyExponent:
			e, err := strconv.Atoi(t.Text)
			if err != nil || e > maxExponent {
				return Number{}, &LexError{Text: t.Text, Kind: "number", Col: t.Col}
			}
			exp = e
		}
	}
	mant, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return Number{}, &LexError{Text: digits.String(), Kind: "number"}
	}
	if neg {
		mant.Neg(mant)
	}
	if eneg {
		exp = -exp
	}
	places -= exp
	if places < 0 {
		mant.Mul(mant, pow10(-places))
		places = 0
	}
	return Number{mant, places}, nil
}
