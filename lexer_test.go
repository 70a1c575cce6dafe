package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_tokenize(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
		want   []token
	}{
		{
			name:   "empty",
			source: "",
			want:   nil,
		},
		{
			name:   "declaration words",
			source: `5 x let =`,
			want: []token{
				{kind: tokenNumber, lit: "5", pos: Pos{1, 1}},
				{kind: tokenIdent, lit: "x", pos: Pos{1, 3}},
				{kind: tokenKeyword, lit: "let", pos: Pos{1, 5}},
				{kind: tokenKeyword, lit: "=", pos: Pos{1, 9}},
			},
		},
		{
			name:   "negative and fractional numbers",
			source: `-5 3.14 -`,
			want: []token{
				{kind: tokenNumber, lit: "-5", pos: Pos{1, 1}},
				{kind: tokenNumber, lit: "3.14", pos: Pos{1, 4}},
				{kind: tokenKeyword, lit: "-", pos: Pos{1, 9}},
			},
		},
		{
			name:   "standalone brackets delimit",
			source: `[ 1 ]`,
			want: []token{
				{kind: tokenLBracket, lit: "[", pos: Pos{1, 1}},
				{kind: tokenNumber, lit: "1", pos: Pos{1, 3}},
				{kind: tokenRBracket, lit: "]", pos: Pos{1, 5}},
			},
		},
		{
			name:   "glued brackets are identifier text",
			source: `foo( )`,
			want: []token{
				{kind: tokenIdent, lit: "foo(", pos: Pos{1, 1}},
				{kind: tokenRParen, lit: ")", pos: Pos{1, 6}},
			},
		},
		{
			name:   "strings may contain whitespace",
			source: `"hello world" println`,
			want: []token{
				{kind: tokenString, lit: "hello world", pos: Pos{1, 1}},
				{kind: tokenKeyword, lit: "println", pos: Pos{1, 15}},
			},
		},
		{
			name:   "string escapes",
			source: `"a\"b\\c\nd\te"`,
			want: []token{
				{kind: tokenString, lit: "a\"b\\c\nd\te", pos: Pos{1, 1}},
			},
		},
		{
			name:   "keywords only when exact",
			source: `iffy if for format`,
			want: []token{
				{kind: tokenIdent, lit: "iffy", pos: Pos{1, 1}},
				{kind: tokenKeyword, lit: "if", pos: Pos{1, 6}},
				{kind: tokenKeyword, lit: "for", pos: Pos{1, 9}},
				{kind: tokenIdent, lit: "format", pos: Pos{1, 13}},
			},
		},
		{
			name:   "operator words",
			source: `+ += @ # ! x-y`,
			want: []token{
				{kind: tokenKeyword, lit: "+", pos: Pos{1, 1}},
				{kind: tokenKeyword, lit: "+=", pos: Pos{1, 3}},
				{kind: tokenKeyword, lit: "@", pos: Pos{1, 6}},
				{kind: tokenKeyword, lit: "#", pos: Pos{1, 8}},
				{kind: tokenKeyword, lit: "!", pos: Pos{1, 10}},
				{kind: tokenIdent, lit: "x-y", pos: Pos{1, 12}},
			},
		},
		{
			name:   "positions span lines",
			source: "1\n 2",
			want: []token{
				{kind: tokenNumber, lit: "1", pos: Pos{1, 1}},
				{kind: tokenNumber, lit: "2", pos: Pos{2, 2}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := tokenize(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tokens)
		})
	}
}

func Test_tokenize_errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
		err    string
	}{
		{
			name:   "unterminated string",
			source: `"abc`,
			err:    `lex error at 1:1: unterminated string`,
		},
		{
			name:   "string broken by newline",
			source: "\"ab\ncd\"",
			err:    `lex error at 1:1: unterminated string`,
		},
		{
			name:   "unknown escape",
			source: `"a\qb"`,
			err:    `lex error at 1:1: unknown escape \q in string`,
		},
		{
			name:   "control character",
			source: "a \x01 b",
			err:    `lex error at 1:3: unrecognized character '\x01'`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokenize(tc.source)
			require.Error(t, err)
			assert.EqualError(t, err, tc.err)
			var le lexError
			assert.True(t, errors.As(err, &le), "expected a lex error")
		})
	}
}

func Test_isNumber(t *testing.T) {
	for word, want := range map[string]bool{
		"0":    true,
		"42":   true,
		"-7":   true,
		"3.14": true,
		"-0.5": true,
		".5":   true,
		"5.":   true,
		"":     false,
		"-":    false,
		".":    false,
		"1.2.": false,
		"--5":  false,
		"12a":  false,
	} {
		assert.Equal(t, want, isNumber(word), "isNumber(%q)", word)
	}
}
