// Command emal evaluates arithmetic expressions exactly.
//
// Expressions come from the arguments, or from stdin one per line when no
// arguments are given. Variables are bound with --given:
//
//	emal --given a=4,55 --given b=1,22 "(a + b) / 2"
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/LikaKavkasidze/emal"
)

var cli struct {
	Given    map[string]string `short:"g" help:"Variable bindings as name=value."`
	Decimals int               `short:"d" default:"2" help:"Decimal places in results."`
	Float    bool              `help:"Evaluate on floats instead of exact decimals."`
	Postfix  bool              `help:"Print the evaluation order instead of evaluating."`
	Exprs    []string          `arg:"" optional:"" name:"expr" help:"Expressions to evaluate."`
}

func main() {
	k := kong.Parse(&cli,
		kong.Name("emal"),
		kong.Description("An exact decimal expression calculator."),
	)

	env := make(map[string]emal.Number, len(cli.Given))
	for name, val := range cli.Given {
		n, err := emal.ParseNumber(val)
		if err != nil {
			k.Fatalf("binding %s: %v", name, err)
		}
		env[name] = n
	}

	exprs := cli.Exprs
	if len(exprs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			exprs = append(exprs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			k.Fatalf("reading stdin: %v", err)
		}
	}

	for _, src := range exprs {
		if err := run(src, env); err != nil {
			k.Fatalf("%s: %v", src, err)
		}
	}
}

func run(src string, env map[string]emal.Number) error {
	e, err := emal.Parse(src)
	if err != nil {
		return err
	}
	if cli.Postfix {
		fmt.Println(e)
		return nil
	}
	if cli.Float {
		fenv := make(map[string]emal.Real, len(env))
		for name, n := range env {
			v, err := emal.Real{}.FromNumber(n)
			if err != nil {
				return err
			}
			fenv[name] = v
		}
		r, err := emal.Evaluate(e, fenv)
		if err != nil {
			return err
		}
		fmt.Println(r.Float().Text('g', 10))
		return nil
	}
	r, err := e.Evaluate(env)
	if err != nil {
		return err
	}
	fmt.Println(r.Text(cli.Decimals))
	return nil
}
