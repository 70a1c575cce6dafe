package main

import (
	"context"
	"errors"
	"io"
)

func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.root = newScope(nil)
	return &vm
}

// Run lexes, parses, and evaluates one source text against the VM's global
// scope and operand stack.  Lex and parse failures are returned as-is;
// evaluation runs isolated, with halt errors unwrapped for the caller.
func (vm *VM) Run(ctx context.Context, source string) error {
	terms, err := load(source)
	if err != nil {
		return err
	}
	err = isolate("eval", func() error {
		vm.eval(ctx, terms, vm.root)
		return vm.out.Flush()
	})
	var vmErr vmHaltError
	if errors.As(err, &vmErr) {
		err = vmErr.error
	}
	return err
}

// load turns source text into an executable term sequence.
func load(source string) ([]term, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	return parse(tokens)
}

func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithMaxDepth(limit int) VMOption { return maxDepthOption(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
