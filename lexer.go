package main

import (
	"fmt"
	"strings"
	"unicode"
)

//// Lexing
//
// Knusper source is a stream of whitespace separated words.  The bracket
// characters ( ) { } [ ] are delimiter tokens only when they stand alone as a
// word; glued to adjacent text they are ordinary identifier characters.  The
// only construct that may contain whitespace is a double quoted string.

type tokenKind uint8

const (
	tokenNumber tokenKind = iota
	tokenString
	tokenIdent
	tokenKeyword
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
)

var tokenKindNames = [...]string{
	"number",
	"string",
	"ident",
	"keyword",
	`"("`,
	`")"`,
	`"{"`,
	`"}"`,
	`"["`,
	`"]"`,
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("tokenKind(%d)", uint8(k))
}

// Pos locates a token within its source text.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%v:%v", p.Line, p.Col) }

type token struct {
	kind tokenKind
	lit  string
	pos  Pos
}

func (tok token) String() string {
	switch tok.kind {
	case tokenString:
		return fmt.Sprintf("%v(%q)", tok.kind, tok.lit)
	case tokenNumber, tokenIdent, tokenKeyword:
		return fmt.Sprintf("%v(%v)", tok.kind, tok.lit)
	}
	return tok.kind.String()
}

// controlKeywords are the keywords dispatched structurally by the evaluator;
// builtin operator names are keywords too, but live in the builtins table.
var controlKeywords = map[string]bool{
	"let":    true,
	"global": true,
	"=":      true,
	"fn":     true,
	"@":      true,
	"#":      true,
	"for":    true,
	"if":     true,
}

func isKeyword(word string) bool {
	if controlKeywords[word] {
		return true
	}
	_, ok := builtins[word]
	return ok
}

// isNumber reports whether word is a numeric literal: an optional leading
// minus, digits, and at most one decimal point.
func isNumber(word string) bool {
	s := strings.TrimPrefix(word, "-")
	digits, dot := 0, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			if dot {
				return false
			}
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func tokenize(source string) ([]token, error) {
	lex := lexer{src: []rune(source), pos: Pos{Line: 1, Col: 1}}
	var tokens []token
	for {
		lex.skipSpace()
		r, ok := lex.peek()
		if !ok {
			return tokens, nil
		}
		start := lex.pos
		if r == '"' {
			lit, err := lex.scanString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, lit: lit, pos: start})
			continue
		}
		word, err := lex.scanWord()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, classify(word, start))
	}
}

type lexer struct {
	src []rune
	off int
	pos Pos
}

func (lex *lexer) peek() (rune, bool) {
	if lex.off >= len(lex.src) {
		return 0, false
	}
	return lex.src[lex.off], true
}

func (lex *lexer) next() (rune, bool) {
	r, ok := lex.peek()
	if ok {
		lex.off++
		if r == '\n' {
			lex.pos.Line++
			lex.pos.Col = 1
		} else {
			lex.pos.Col++
		}
	}
	return r, ok
}

func (lex *lexer) skipSpace() {
	for {
		r, ok := lex.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		lex.next()
	}
}

func (lex *lexer) scanWord() (string, error) {
	var sb strings.Builder
	for {
		r, ok := lex.peek()
		if !ok || unicode.IsSpace(r) {
			return sb.String(), nil
		}
		if unicode.IsControl(r) {
			return "", lexError{lex.pos, fmt.Sprintf("unrecognized character %q", r)}
		}
		lex.next()
		sb.WriteRune(r)
	}
}

func (lex *lexer) scanString() (string, error) {
	start := lex.pos
	lex.next() // opening quote
	var sb strings.Builder
	for {
		r, ok := lex.next()
		if !ok {
			return "", lexError{start, "unterminated string"}
		}
		switch r {
		case '"':
			return sb.String(), nil
		case '\n':
			return "", lexError{start, "unterminated string"}
		case '\\':
			e, ok := lex.next()
			if !ok {
				return "", lexError{start, "unterminated string"}
			}
			switch e {
			case '"', '\\':
				sb.WriteRune(e)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return "", lexError{start, fmt.Sprintf("unknown escape \\%c in string", e)}
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func classify(word string, pos Pos) token {
	switch word {
	case "(":
		return token{kind: tokenLParen, lit: word, pos: pos}
	case ")":
		return token{kind: tokenRParen, lit: word, pos: pos}
	case "{":
		return token{kind: tokenLBrace, lit: word, pos: pos}
	case "}":
		return token{kind: tokenRBrace, lit: word, pos: pos}
	case "[":
		return token{kind: tokenLBracket, lit: word, pos: pos}
	case "]":
		return token{kind: tokenRBracket, lit: word, pos: pos}
	}
	if isNumber(word) {
		return token{kind: tokenNumber, lit: word, pos: pos}
	}
	if isKeyword(word) {
		return token{kind: tokenKeyword, lit: word, pos: pos}
	}
	return token{kind: tokenIdent, lit: word, pos: pos}
}
