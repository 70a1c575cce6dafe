package main

import (
	"strconv"
	"strings"
)

//// Parsing
//
// The grammar is strictly postfix, so parsing needs no precedence and no
// lookahead: a single scan turns the token stream into a flat term sequence,
// with an explicit frame stack tracking currently open bracket groups.  The
// parser never interprets keywords; meaning is entirely the evaluator's
// concern.

type term interface {
	String() string
}

type numTerm float64
type strTerm string
type identTerm string
type keywordTerm string
type tupleTerm []term
type arrayTerm []term
type blockTerm []term

func (t numTerm) String() string     { return formatNum(float64(t)) }
func (t strTerm) String() string     { return strconv.Quote(string(t)) }
func (t identTerm) String() string   { return string(t) }
func (t keywordTerm) String() string { return string(t) }
func (t tupleTerm) String() string   { return formatGroup("(", t, ")") }
func (t arrayTerm) String() string   { return formatGroup("[", t, "]") }
func (t blockTerm) String() string   { return formatGroup("{", t, "}") }

func formatGroup(open string, terms []term, close string) string {
	if len(terms) == 0 {
		return open + close
	}
	var sb strings.Builder
	sb.WriteString(open)
	for _, t := range terms {
		sb.WriteByte(' ')
		sb.WriteString(t.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(close)
	return sb.String()
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type groupFrame struct {
	open  tokenKind
	pos   Pos
	terms []term
}

func closes(close, open tokenKind) bool {
	switch close {
	case tokenRParen:
		return open == tokenLParen
	case tokenRBrace:
		return open == tokenLBrace
	case tokenRBracket:
		return open == tokenLBracket
	}
	return false
}

func parse(tokens []token) ([]term, error) {
	var top []term
	var open []groupFrame

	appendTerm := func(t term) {
		if n := len(open); n > 0 {
			open[n-1].terms = append(open[n-1].terms, t)
		} else {
			top = append(top, t)
		}
	}

	for _, tok := range tokens {
		switch tok.kind {
		case tokenNumber:
			v, err := strconv.ParseFloat(tok.lit, 64)
			if err != nil {
				return nil, parseError{pos: tok.pos, reason: "malformed number " + tok.lit}
			}
			appendTerm(numTerm(v))

		case tokenString:
			appendTerm(strTerm(tok.lit))

		case tokenIdent:
			appendTerm(identTerm(tok.lit))

		case tokenKeyword:
			appendTerm(keywordTerm(tok.lit))

		case tokenLParen, tokenLBrace, tokenLBracket:
			open = append(open, groupFrame{open: tok.kind, pos: tok.pos})

		case tokenRParen, tokenRBrace, tokenRBracket:
			if len(open) == 0 {
				return nil, parseError{pos: tok.pos, reason: "unmatched " + tok.kind.String()}
			}
			fr := open[len(open)-1]
			open = open[:len(open)-1]
			if !closes(tok.kind, fr.open) {
				return nil, parseError{pos: tok.pos, reason: fr.open.String() + " closed by " + tok.kind.String()}
			}
			switch fr.open {
			case tokenLParen:
				appendTerm(tupleTerm(fr.terms))
			case tokenLBrace:
				appendTerm(blockTerm(fr.terms))
			case tokenLBracket:
				appendTerm(arrayTerm(fr.terms))
			}
		}
	}

	if len(open) > 0 {
		fr := open[len(open)-1]
		return nil, parseError{pos: fr.pos, reason: "unclosed " + fr.open.String(), unclosed: true}
	}
	return top, nil
}
