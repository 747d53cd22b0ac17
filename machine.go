package emal

import (
	"strings"
	"unicode/utf8"
)

// EOF is the sentinel rune fed to the running state when input ends. A
// state that terminates on it ends the run cleanly; any other return is an
// incomplete-input failure.
const EOF rune = -1

// StateFn is one named state of a Machine. It receives the current input
// character and returns the state to process the next one: itself to stay,
// another state to transition, or nil to terminate.
type StateFn func(m *Machine, r rune) StateFn

// Config describes a tokenizing machine: its start state, whether tokens
// are stored under caller-chosen keys instead of forming an ordered
// sequence, and optional post-run text transformers for keyed tokens.
type Config struct {
	Start StateFn
	Keyed bool
	// Transformers rewrite the text of keyed tokens after a successful
	// run, at most once per token.
	Transformers map[string]func(string) string
}

// Machine is a character-driven tokenizing state machine. It is the
// interaction surface handed to state functions; a fresh machine runs one
// input to completion or failure and is then discarded.
type Machine struct {
	cfg    *Config
	input  string
	pos    int // byte offset of the current rune
	size   int // byte size of the current rune
	col    int // 1-based rune column of the current rune
	tokens []*Token
	cur    *Token
	buf    strings.Builder
	hold   bool
	err    error
}

// NewMachine creates a machine for one run of the given configuration.
func NewMachine(cfg *Config) *Machine {
	return &Machine{cfg: cfg, col: 1}
}

// Run drives the machine over input until a state terminates or fails.
// It returns the number of bytes consumed; a state that terminates while
// retaining the current character leaves it unconsumed. Reaching the end
// of input in a running state is an incomplete-input failure. After a
// failure no tokens are usable.
func (m *Machine) Run(input string) (int, error) {
	m.input = input
	state := m.cfg.Start
	for m.pos < len(input) {
		r, sz := utf8.DecodeRuneInString(input[m.pos:])
		m.size = sz
		next := state(m, r)
		if m.err != nil {
			return m.fail()
		}
		if !m.hold {
			m.pos += sz
			m.col++
		}
		m.hold = false
		if next == nil {
			m.finish()
			return m.pos, nil
		}
		state = next
	}
	m.size = 0
	if next := state(m, EOF); m.err != nil || next != nil {
		if m.err == nil {
			m.err = &IncompleteError{Col: m.col}
		}
		return m.fail()
	}
	m.finish()
	return m.pos, nil
}

func (m *Machine) fail() (int, error) {
	m.tokens, m.cur = nil, nil
	return m.pos, m.err
}

func (m *Machine) finish() {
	m.closeToken()
	if m.cfg.Transformers == nil {
		return
	}
	for _, t := range m.tokens {
		if t.Key == "" {
			continue
		}
		if tr := m.cfg.Transformers[t.Key]; tr != nil {
			t.Text = tr(t.Text)
		}
	}
}

func (m *Machine) closeToken() {
	if m.cur != nil {
		m.cur.Text = m.buf.String()
		m.cur = nil
	}
	m.buf.Reset()
}

// Open starts a new token of the given kind, closing the previous one.
func (m *Machine) Open(kind TokenKind) *Token {
	if m.cfg.Keyed {
		panic("emal: unkeyed token opened in a keyed machine")
	}
	return m.open(kind, "")
}

// OpenKeyed starts a new token stored under key, closing the previous one.
func (m *Machine) OpenKeyed(key string) *Token {
	if !m.cfg.Keyed {
		panic("emal: keyed token opened in an ordered machine")
	}
	return m.open(TokenNone, key)
}

func (m *Machine) open(kind TokenKind, key string) *Token {
	m.closeToken()
	m.cur = &Token{Kind: kind, Key: key, Col: m.col}
	m.tokens = append(m.tokens, m.cur)
	return m.cur
}

// Append adds the current character to the active token's buffer.
func (m *Machine) Append() {
	if m.cur == nil {
		panic("emal: append with no open token")
	}
	m.buf.WriteString(m.input[m.pos : m.pos+m.size])
}

// Buffer returns the active token's accumulated text.
func (m *Machine) Buffer() string {
	return m.buf.String()
}

// Token returns the active token so states can mutate its metadata in
// place, e.g. reclassify its kind once more input has been seen.
func (m *Machine) Token() *Token {
	return m.cur
}

// Last returns the most recently opened token, or nil.
func (m *Machine) Last() *Token {
	if len(m.tokens) == 0 {
		return nil
	}
	return m.tokens[len(m.tokens)-1]
}

// Peek returns the rune following the current one without consuming any
// input. It reports false at the end of input.
func (m *Machine) Peek() (rune, bool) {
	if m.pos+m.size >= len(m.input) {
		return EOF, false
	}
	r, _ := utf8.DecodeRuneInString(m.input[m.pos+m.size:])
	return r, true
}

// Retain keeps the current character unconsumed: it is reprocessed by the
// returned state, or excluded from the consumed count on termination.
func (m *Machine) Retain() {
	m.hold = true
}

// Col returns the 1-based rune column of the current character.
func (m *Machine) Col() int {
	return m.col
}

// Fail records err and returns the terminal marker, so states can write
// `return m.Fail(err)`.
func (m *Machine) Fail(err error) StateFn {
	m.err = err
	return nil
}

// Delegate runs a fresh machine built from cfg over the remaining input,
// starting at the current character. On success it closes the active
// token, emits a new token of the given kind whose Children are the nested
// machine's tokens and whose Text is the consumed slice, and advances past
// exactly the nested consumption. On failure the cursor is untouched and
// the caller decides how to proceed.
func (m *Machine) Delegate(kind TokenKind, cfg *Config) error {
	sub := NewMachine(cfg)
	consumed, err := sub.Run(m.input[m.pos:])
	if err != nil {
		return err
	}
	text := m.input[m.pos : m.pos+consumed]
	m.closeToken()
	m.tokens = append(m.tokens, &Token{
		Kind:     kind,
		Text:     text,
		Children: sub.tokens,
		Col:      m.col,
	})
	m.pos += consumed
	m.col += utf8.RuneCountInString(text)
	m.hold = true
	return nil
}

// Tokens returns the produced tokens in order. It returns nil after a
// failed run; callers must check Run's error first.
func (m *Machine) Tokens() []*Token {
	if m.err != nil {
		return nil
	}
	return m.tokens
}

// Keyed returns the token stored under key, or nil.
func (m *Machine) Keyed(key string) *Token {
	if m.err != nil {
		return nil
	}
	for _, t := range m.tokens {
		if t.Key == key {
			return t
		}
	}
	return nil
}

// Err returns the failure recorded by the last run, if any.
func (m *Machine) Err() error {
	return m.err
}
