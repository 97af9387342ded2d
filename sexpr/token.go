// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sexpr implements the S-expression surface syntax of spec.md
// §4.G: a tokenizer/parser producing a small SExpr tree, and a
// lowering pass from reserved head symbols to Layer-1 terms.
package sexpr

import (
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tokLParen tokenKind = iota
	tokRParen
	tokSymbol
	tokInteger
	tokBoolean
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	bool bool
	num  uint64
}

func isSymbolStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSymbolCont(r rune) bool {
	if isSymbolStart(r) || (r >= '0' && r <= '9') {
		return true
	}
	switch r {
	case '?', '!', '+', '*', '/', '=', '<', '>', '-':
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// tokenize splits src into tokens per spec.md §4.G's grammar: balanced
// parens, symbols matching [A-Za-z_][A-Za-z0-9_?!+*/=<>-]*, unsigned
// integer literals, #t/#f booleans, and the reserved symbol nil.
func tokenize(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i++
		case r == '#':
			if i+1 >= len(runes) || (runes[i+1] != 't' && runes[i+1] != 'f') {
				return nil, fmt.Errorf("sexpr: invalid boolean literal at offset %d", i)
			}
			tokens = append(tokens, token{kind: tokBoolean, bool: runes[i+1] == 't'})
			i += 2
		case isDigit(r):
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			text := string(runes[start:i])
			var n uint64
			for _, c := range text {
				n = n*10 + uint64(c-'0')
			}
			tokens = append(tokens, token{kind: tokInteger, num: n, text: text})
		case isSymbolStart(r):
			start := i
			for i < len(runes) && isSymbolCont(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokSymbol, text: string(runes[start:i])})
		default:
			return nil, fmt.Errorf("sexpr: unexpected character %q at offset %d", r, i)
		}
	}
	tokens = append(tokens, token{kind: tokEOF})
	return tokens, nil
}

func (t token) String() string {
	switch t.kind {
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokSymbol:
		return t.text
	case tokInteger:
		return t.text
	case tokBoolean:
		if t.bool {
			return "#t"
		}
		return "#f"
	case tokEOF:
		return "<eof>"
	default:
		return "?"
	}
}

func tokensString(tokens []token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
