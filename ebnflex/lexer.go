// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// Every production whose name starts with an uppercase letter is a token
// kind. At each position the lexer picks the longest match; ties go to the
// kind that sorts first.
package ebnflex

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/ebnf"
)

// Position represents a location in the input.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Grammar is a verified token grammar.
type Grammar struct {
	productions ebnf.Grammar
	kinds       []string
}

// Compile parses an EBNF grammar and checks that every production is
// defined and reachable from start. The start production lists the tokens
// and is not a token kind itself.
func Compile(name, src, start string) (*Grammar, error) {
	g, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, errors.Wrapf(err, "parse grammar %s", name)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, errors.Wrapf(err, "verify grammar %s", name)
	}

	var kinds []string
	for name, prod := range g {
		if prod.Expr != nil && isTokenName(name) && name != start {
			kinds = append(kinds, name)
		}
	}
	sort.Strings(kinds)
	return &Grammar{productions: g, kinds: kinds}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// grammars embedded in the program.
func MustCompile(name, src, start string) *Grammar {
	g, err := Compile(name, src, start)
	if err != nil {
		panic(err)
	}
	return g
}

func isTokenName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on a grammar.
type Lexer struct {
	grammar *Grammar
	skip    map[string]bool
	input   []byte
	pos     int
	line    int
	column  int
	memo    map[memoKey]int // match length, -1 for no match
	active  map[memoKey]bool
}

// NewLexer creates a lexer for input. Tokens of the skip kinds are consumed
// but never returned.
func NewLexer(grammar *Grammar, input []byte, skip ...string) *Lexer {
	l := &Lexer{
		grammar: grammar,
		skip:    make(map[string]bool, len(skip)),
		input:   input,
		line:    1,
		column:  1,
		memo:    make(map[memoKey]int),
		active:  make(map[memoKey]bool),
	}
	for _, kind := range skip {
		l.skip[kind] = true
	}
	return l
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// NextToken returns the next token that is not skipped. At the end of the
// input it returns a token of kind KindEOF together with io.EOF. Input no
// token matches is returned one byte at a time as KindError tokens.
func (l *Lexer) NextToken() (Token, error) {
	for {
		tok, err := l.scan()
		if err != nil || !l.skip[tok.Kind] {
			return tok, err
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: start}, io.EOF
	}

	bestKind, bestLen := "", 0
	for _, kind := range l.grammar.kinds {
		if n := l.matchName(kind, start.Offset); n > bestLen {
			bestKind, bestLen = kind, n
		}
	}

	if bestLen == 0 {
		l.advance()
		return Token{Kind: KindError, Literal: string(l.input[start.Offset:l.pos]), Position: start}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[start.Offset:l.pos]),
		Position: start,
	}, nil
}

// match returns the length of the longest match of expr at offset, or 0.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if strings.HasPrefix(string(l.input[offset:]), e.String) {
			return len(e.String)
		}
		return 0

	case *ebnf.Range:
		if offset >= len(l.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return 0
		}
		if ch := l.input[offset]; ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1
		}
		return 0

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == 0 && !optional(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return l.match(e.Body, offset)

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0
}

// optional reports whether expr may match the empty string, so a zero
// length match inside a sequence is not a failure.
func optional(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Repetition, *ebnf.Option:
		return true
	}
	return false
}

// matchName matches a named production with memoization. Left recursion
// fails instead of looping.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
	if l.active[key] {
		return 0
	}

	prod, ok := l.grammar.productions[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.active[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.active, key)

	if n == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = n
	}
	return n
}

// Tokenize reads all remaining tokens. The last token has kind KindEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}
