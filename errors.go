package main

import (
	"errors"
	"fmt"
	"strings"
)

// Every runtime failure aborts the current run; none are recoverable from
// within a program.  Each concrete error matches one of these kinds under
// errors.Is.
var (
	errStackUnderflow  = errors.New("stack underflow")
	errUndefined       = errors.New("undefined variable")
	errTypeMismatch    = errors.New("type mismatch")
	errArityMismatch   = errors.New("arity mismatch")
	errIndexOutOfRange = errors.New("index out of range")
	errDepthLimit      = errors.New("nesting depth limit exceeded")
)

type lexError struct {
	pos    Pos
	reason string
}

func (err lexError) Error() string {
	return fmt.Sprintf("lex error at %v: %v", err.pos, err.reason)
}

type parseError struct {
	pos      Pos
	reason   string
	unclosed bool
}

func (err parseError) Error() string {
	return fmt.Sprintf("parse error at %v: %v", err.pos, err.reason)
}

// isIncomplete reports whether err only complains about a bracket group that
// more input could still close; the REPL uses it to prompt for continuation.
func isIncomplete(err error) bool {
	var pe parseError
	return errors.As(err, &pe) && pe.unclosed
}

type undefinedError string

func (name undefinedError) Error() string {
	return fmt.Sprintf("undefined variable %q", string(name))
}
func (undefinedError) Is(target error) bool { return target == errUndefined }

type typeError struct {
	op   string
	want string
	got  string
}

func (err typeError) Error() string {
	return fmt.Sprintf("type mismatch: %v wants %v, got %v", err.op, err.want, err.got)
}
func (typeError) Is(target error) bool { return target == errTypeMismatch }

type underflowError struct {
	op   string
	want int
	have int
}

func (err underflowError) Error() string {
	return fmt.Sprintf("stack underflow: %v wants %v operand(s), have %v", err.op, err.want, err.have)
}
func (underflowError) Is(target error) bool { return target == errStackUnderflow }

type arityError struct {
	params []string
	have   int
}

func (err arityError) Error() string {
	return fmt.Sprintf("arity mismatch: call wants %v argument(s) ( %v ), have %v",
		len(err.params), strings.Join(err.params, " "), err.have)
}
func (arityError) Is(target error) bool { return target == errArityMismatch }

type indexError struct {
	index int
	size  int
}

func (err indexError) Error() string {
	return fmt.Sprintf("index %v out of range [0:%v)", err.index, err.size)
}
func (indexError) Is(target error) bool { return target == errIndexOutOfRange }

// vmHaltError marks errors raised by the evaluator's halt path, so that the
// API boundary can tell them apart from genuine panics.
type vmHaltError struct{ error }

func (err vmHaltError) Error() string { return fmt.Sprintf("halted: %v", err.error) }
func (err vmHaltError) Unwrap() error { return err.error }
