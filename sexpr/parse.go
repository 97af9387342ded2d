// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sexpr

import "fmt"

// Kind enumerates the shape of a parsed SExpr (spec.md §4.G).
type Kind uint8

const (
	KindSymbol Kind = iota
	KindInteger
	KindBoolean
	KindNil
	KindList
)

// SExpr is a parsed S-expression. Only the fields matching Kind are
// populated.
type SExpr struct {
	Kind Kind

	Symbol  string
	Integer uint64
	Boolean bool
	Items   []*SExpr
}

func (e *SExpr) String() string {
	switch e.Kind {
	case KindSymbol:
		return e.Symbol
	case KindInteger:
		return fmt.Sprintf("%d", e.Integer)
	case KindBoolean:
		if e.Boolean {
			return "#t"
		}
		return "#f"
	case KindNil:
		return "nil"
	case KindList:
		s := "("
		for i, it := range e.Items {
			if i > 0 {
				s += " "
			}
			s += it.String()
		}
		return s + ")"
	default:
		return "?"
	}
}

// Parse reads exactly one top-level S-expression from src and reports
// an error on trailing tokens or unbalanced parens.
func Parse(src string) (*SExpr, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseOne()
	if err != nil {
		return nil, err
	}
	if p.tokens[p.pos].kind != tokEOF {
		return nil, fmt.Errorf("sexpr: trailing input after top-level expression: %s", tokensString(p.tokens[p.pos:]))
	}
	return expr, nil
}

// ParseAll reads a sequence of top-level S-expressions from src, e.g. a
// module body of several toplevel forms.
func ParseAll(src string) ([]*SExpr, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	var exprs []*SExpr
	for p.tokens[p.pos].kind != tokEOF {
		expr, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) parseOne() (*SExpr, error) {
	t := p.peek()
	switch t.kind {
	case tokLParen:
		return p.parseList()
	case tokRParen:
		return nil, fmt.Errorf("sexpr: unbalanced parens: unexpected %q", ")")
	case tokSymbol:
		p.pos++
		if t.text == "nil" {
			return &SExpr{Kind: KindNil}, nil
		}
		return &SExpr{Kind: KindSymbol, Symbol: t.text}, nil
	case tokInteger:
		p.pos++
		return &SExpr{Kind: KindInteger, Integer: t.num}, nil
	case tokBoolean:
		p.pos++
		return &SExpr{Kind: KindBoolean, Boolean: t.bool}, nil
	case tokEOF:
		return nil, fmt.Errorf("sexpr: unexpected end of input")
	default:
		return nil, fmt.Errorf("sexpr: unexpected token %q", t.String())
	}
}

func (p *parser) parseList() (*SExpr, error) {
	p.pos++ // consume '('
	var items []*SExpr
	for {
		if p.peek().kind == tokEOF {
			return nil, fmt.Errorf("sexpr: unbalanced parens: missing %q", ")")
		}
		if p.peek().kind == tokRParen {
			p.pos++
			return &SExpr{Kind: KindList, Items: items}, nil
		}
		item, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}
