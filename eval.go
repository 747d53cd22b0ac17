package emal

import (
	"sort"
	"strings"
)

// Arith is the capability surface an operand type provides to Evaluate.
// Operations return fresh values; implementations must not mutate their
// receivers. FromNumber is called on the zero value of the type to realize
// each literal.
type Arith[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) (T, error)
	Log10() (T, error)
	Max(T) T
	Min(T) T
	FromNumber(Number) (T, error)
}

// rpnToken is one evaluation step of a parsed expression.
type rpnToken struct {
	kind TokenKind
	text string
	num  Number
}

// Expression is a parsed expression in evaluation order. It is immutable
// and may be evaluated concurrently with any operand type.
type Expression struct {
	rpn   []rpnToken
	names []string
}

// Parse lexes src, converts it to evaluation order, and decodes its numeric
// literals. Errors wrong in the input text implement InputError.
func Parse(src string, opts ...Option) (*Expression, error) {
	c := config{funcs: functions}
	for _, o := range opts {
		c = o.parseOption(c)
	}
	m := NewMachine(lexerConfig(c.funcs))
	if _, err := m.Run(src); err != nil {
		return nil, err
	}
	out, err := toPostfix(m.Tokens(), c.funcs)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &EmptyExpressionError{Col: m.Col()}
	}
	e := &Expression{rpn: make([]rpnToken, 0, len(out))}
	seen := make(map[string]bool)
	for _, t := range out {
		r := rpnToken{kind: t.Kind, text: t.Text}
		switch t.Kind {
		case TokenNumber:
			n, err := numberFromTokens(t.Children)
			if err != nil {
				return nil, err
			}
			r.num = n
		case TokenVariable:
			if !seen[t.Text] {
				seen[t.Text] = true
				e.names = append(e.names, t.Text)
			}
		}
		e.rpn = append(e.rpn, r)
	}
	sort.Strings(e.names)
	return e, nil
}

// Vars returns the variable names the expression uses, sorted and
// deduplicated.
func (e *Expression) Vars() []string {
	return append([]string(nil), e.names...)
}

// String renders the expression in evaluation order, tokens separated by
// spaces.
func (e *Expression) String() string {
	texts := make([]string, len(e.rpn))
	for i, t := range e.rpn {
		texts[i] = t.text
	}
	return strings.Join(texts, " ")
}

// Evaluate computes e over operand type T. Variables are bound from env;
// an unbound variable is a NameError. Literals are realized through T's
// FromNumber.
func Evaluate[T Arith[T]](e *Expression, env map[string]T) (T, error) {
	var zero T
	stack := make([]T, 0, len(e.rpn))
	pop := func(op string, n int) ([]T, error) {
		if len(stack) < n {
			return nil, &StackError{Op: op, Want: n, Have: len(stack)}
		}
		args := stack[len(stack)-n:]
		stack = stack[:len(stack)-n]
		return args, nil
	}
	for _, t := range e.rpn {
		switch t.kind {
		case TokenNumber:
			v, err := zero.FromNumber(t.num)
			if err != nil {
				return zero, err
			}
			stack = append(stack, v)
		case TokenVariable:
			v, ok := env[t.text]
			if !ok {
				return zero, &NameError{Name: t.text}
			}
			stack = append(stack, v)
		case TokenOperator:
			args, err := pop(t.text, 2)
			if err != nil {
				return zero, err
			}
			v, err := applyOp(t.text, args[0], args[1])
			if err != nil {
				return zero, err
			}
			stack = append(stack, v)
		case TokenFunction:
			args, err := pop(t.text, functions[t.text])
			if err != nil {
				return zero, err
			}
			v, err := applyFunc(t.text, args)
			if err != nil {
				return zero, err
			}
			stack = append(stack, v)
		}
	}
	if len(stack) != 1 {
		return zero, &StackError{Have: len(stack)}
	}
	return stack[0], nil
}

// Evaluate computes e over exact decimals.
func (e *Expression) Evaluate(env map[string]Number) (Number, error) {
	return Evaluate(e, env)
}

// EvalString parses and evaluates src over exact decimals in one step.
func EvalString(src string, env map[string]Number) (Number, error) {
	e, err := Parse(src)
	if err != nil {
		return Number{}, err
	}
	return e.Evaluate(env)
}
