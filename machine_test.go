package emal

import (
	"errors"
	"testing"
)

func TestNumberMachine(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		consumed int
		keys     map[string]string
	}{
		{
			name:     "full",
			in:       "12,5e-3 rest",
			consumed: 7,
			keys:     map[string]string{"sign": "", "integer": "12", "fraction": "5", "esign": "-", "exponent": "3"},
		},
		{
			name:     "dotted",
			in:       "1.25",
			consumed: 4,
			keys:     map[string]string{"integer": "1", "fraction": "25"},
		},
		{
			name:     "plus-dropped",
			in:       "+12",
			consumed: 3,
			keys:     map[string]string{"sign": "", "integer": "12"},
		},
		{
			name:     "minus-kept",
			in:       "-3",
			consumed: 2,
			keys:     map[string]string{"sign": "-", "integer": "3"},
		},
		{
			name:     "point-needs-digit",
			in:       "2,x",
			consumed: 1,
			keys:     map[string]string{"integer": "2"},
		},
		{
			name:     "exponent-needs-digit",
			in:       "2e",
			consumed: 1,
			keys:     map[string]string{"integer": "2"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMachine(NumberTokenizer())
			consumed, err := m.Run(c.in)
			if err != nil {
				t.Fatalf("Run(%q) failed: %v", c.in, err)
			}
			if consumed != c.consumed {
				t.Errorf("Run(%q) consumed %d bytes, want %d", c.in, consumed, c.consumed)
			}
			for key, text := range c.keys {
				tok := m.Keyed(key)
				switch {
				case tok == nil && text != "":
					t.Errorf("Run(%q) produced no %s token", c.in, key)
				case tok != nil && tok.Text != text:
					t.Errorf("Run(%q) %s = %q, want %q", c.in, key, tok.Text, text)
				}
			}
		})
	}
}

func TestNumberMachineErrors(t *testing.T) {
	cases := []string{"+", "-", "e5", "x", ""}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			m := NewMachine(NumberTokenizer())
			_, err := m.Run(in)
			if err == nil {
				t.Fatalf("Run(%q) succeeded, want error", in)
			}
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Errorf("Run(%q) = %v, want a LexError", in, err)
			}
			if m.Tokens() != nil {
				t.Errorf("Run(%q) left tokens after failure: %v", in, m.Tokens())
			}
		})
	}
}

// quoted recognizes a double-quoted string, to exercise an ordered machine
// that can run out of input mid-token.
func quotedConfig() *Config {
	var body StateFn
	body = func(m *Machine, r rune) StateFn {
		switch r {
		case EOF:
			return m.Fail(&IncompleteError{Col: m.Col()})
		case '"':
			return nil
		}
		m.Append()
		return body
	}
	open := func(m *Machine, r rune) StateFn {
		if r != '"' {
			return m.Fail(&LexError{Text: string(r), Kind: "string", Col: m.Col()})
		}
		m.Open(TokenNone)
		return body
	}
	return &Config{Start: open}
}

func TestMachineIncomplete(t *testing.T) {
	m := NewMachine(quotedConfig())
	consumed, err := m.Run(`"abc"def`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consumed != 5 {
		t.Errorf("consumed %d bytes, want 5", consumed)
	}
	if got := m.Last().Text; got != "abc" {
		t.Errorf("token text %q, want %q", got, "abc")
	}

	m = NewMachine(quotedConfig())
	_, err = m.Run(`"abc`)
	var ierr *IncompleteError
	if !errors.As(err, &ierr) {
		t.Fatalf("Run(%q) = %v, want an IncompleteError", `"abc`, err)
	}
}

func TestMachineModePanics(t *testing.T) {
	t.Run("keyed-in-ordered", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("OpenKeyed in an ordered machine did not panic")
			}
		}()
		m := NewMachine(&Config{Start: func(m *Machine, r rune) StateFn { return nil }})
		m.OpenKeyed("k")
	})
	t.Run("ordered-in-keyed", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Open in a keyed machine did not panic")
			}
		}()
		m := NewMachine(&Config{Start: func(m *Machine, r rune) StateFn { return nil }, Keyed: true})
		m.Open(TokenNone)
	})
}
