package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/objcexport/ebnflex"
)

const typeSyntax = `
Type = { Name | Space | Open | Close | Comma | Nullable } .
Name = ( letter | "_" | "$" ) { letter | digit | "_" | "$" | "." } .
Space = white { white } .
Open = "<" .
Close = ">" .
Comma = "," .
Nullable = "?" .
white = " " | "\t" .
letter = "a" … "z" | "A" … "Z" .
digit = "0" … "9" .
`

var typeGrammar = ebnflex.MustCompile("type.ebnf", typeSyntax, "Type")

// ParseType reads the written form of a type reference, the same form
// TypeModel.String produces: a qualified name, optional type arguments in
// angle brackets and a trailing ? for nullable types. A name without a
// package qualifier refers to a type parameter.
//
//	kotlin.collections.Map<kotlin.String, demo.User?>?
func ParseType(s string) (TypeModel, error) {
	tokens, err := ebnflex.NewLexer(typeGrammar, []byte(s), "Space").Tokenize()
	if err != nil {
		return TypeModel{}, errors.Wrapf(err, "type %q", s)
	}
	p := typeParser{input: s, tokens: tokens}
	t, err := p.parse()
	if err != nil {
		return TypeModel{}, err
	}
	if tok := p.peek(); tok.Kind != ebnflex.KindEOF {
		return TypeModel{}, p.unexpected(tok, "end of type")
	}
	return t, nil
}

type typeParser struct {
	input  string
	tokens []ebnflex.Token
	pos    int
}

func (p *typeParser) parse() (TypeModel, error) {
	tok := p.peek()
	if tok.Kind != "Name" {
		return TypeModel{}, p.unexpected(tok, "a type name")
	}
	p.pos++
	t := TypeModel{Name: tok.Literal, Parameter: !strings.Contains(tok.Literal, ".")}

	if p.next("Open") {
		for {
			arg, err := p.parse()
			if err != nil {
				return TypeModel{}, err
			}
			t.Arguments = append(t.Arguments, arg)
			if p.next("Comma") {
				continue
			}
			if p.next("Close") {
				break
			}
			return TypeModel{}, p.unexpected(p.peek(), ", or >")
		}
	}
	t.Nullable = p.next("Nullable")
	return t, nil
}

// peek returns the current token. The token list always ends with EOF,
// which is never consumed.
func (p *typeParser) peek() ebnflex.Token {
	return p.tokens[p.pos]
}

func (p *typeParser) next(kind string) bool {
	if p.peek().Kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *typeParser) unexpected(tok ebnflex.Token, want string) error {
	got := strconv.Quote(tok.Literal)
	if tok.Kind == ebnflex.KindEOF {
		got = "end of input"
	}
	return errors.Newf("expected %s at column %d of type %q, got %s", want, tok.Position.Column, p.input, got)
}

// typeFields is TypeModel without its decoding methods.
type typeFields TypeModel

// UnmarshalYAML accepts either the written form or a mapping with the
// struct fields.
func (t *TypeModel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseType(node.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*t = parsed
		return nil
	}
	return node.Decode((*typeFields)(t))
}

func (t *TypeModel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseType(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	return json.Unmarshal(data, (*typeFields)(t))
}
