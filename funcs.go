package emal

// functions is the default function table, mapping each name to its arity.
var functions = map[string]int{
	"log": 1,
	"max": 2,
	"min": 2,
}

// applyOp applies a binary operator to its operands.
func applyOp[T Arith[T]](op string, a, b T) (T, error) {
	switch op {
	case "+":
		return a.Add(b), nil
	case "-":
		return a.Sub(b), nil
	case "*", "×":
		return a.Mul(b), nil
	case "/", "÷":
		return a.Div(b)
	}
	panic("emal: unknown operator " + op)
}

// applyFunc applies a named function to the operands popped for it.
func applyFunc[T Arith[T]](name string, args []T) (T, error) {
	switch name {
	case "log":
		return args[0].Log10()
	case "max":
		return args[0].Max(args[1]), nil
	case "min":
		return args[0].Min(args[1]), nil
	}
	var zero T
	return zero, &NameError{Name: name}
}
