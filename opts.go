package emal

// config is the result of applying options.
type config struct {
	funcs map[string]int
}

// An Option adjusts the behavior of Parse.
type Option interface {
	parseOption(config) config
}

type optfunc func(config) config

func (f optfunc) parseOption(c config) config {
	return f(c)
}

// WithoutFuncs disables the default function table: every identifier lexes
// as a variable, including log, max and min.
func WithoutFuncs() Option {
	return optfunc(func(c config) config {
		c.funcs = map[string]int{}
		return c
	})
}
