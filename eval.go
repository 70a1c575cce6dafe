package main

import (
	"context"
	"io"
	"math"
)

//// Evaluation
//
// The evaluator is a stack machine: it scans a term sequence left to right
// against one operand stack and a lexical scope chain.  Identifiers push an
// unresolved reference to the current scope; any operation that needs the
// bound value resolves on consumption, while the name binding keywords (let,
// global, =, for's loop variable) take the reference's raw name instead.
// This keeps dispatch uniform without lookahead, and an undeclared name still
// fails at its first use as a value.

type VM struct {
	out   writeFlusher
	logfn func(mess string, args ...interface{})

	stack []value
	root  *scope

	depth    int
	maxDepth int
}

func (vm *VM) eval(ctx context.Context, terms []term, sc *scope) {
	for _, t := range terms {
		vm.haltif(ctx.Err())
		vm.step(ctx, t, sc)
	}
}

func (vm *VM) step(ctx context.Context, t term, sc *scope) {
	if vm.logfn != nil {
		vm.logf("eval %v -- s:%v", t, vm.stack)
	}
	switch t := t.(type) {
	case numTerm:
		vm.push(numValue(float64(t)))

	case strTerm:
		vm.push(strValue(string(t)))

	case identTerm:
		vm.push(refValue(string(t), sc))

	case blockTerm:
		// deferred: captured, not evaluated
		vm.push(closureValue(t, sc))

	case tupleTerm:
		names := make([]string, len(t))
		for i, child := range t {
			id, ok := child.(identTerm)
			if !ok {
				vm.halt(typeError{op: "parameter list", want: "identifiers", got: child.String()})
			}
			names[i] = string(id)
		}
		vm.push(paramsValue(names))

	case arrayTerm:
		vm.push(arrValue(vm.evalCollect(ctx, t, sc)))

	case keywordTerm:
		vm.keyword(ctx, string(t), sc)
	}
}

// evalCollect evaluates terms against a fresh operand stack and returns the
// resulting values in push order, fully resolved.  The outer stack is put
// back under defer so that a halt inside the nested eval cannot lose it.
func (vm *VM) evalCollect(ctx context.Context, terms []term, sc *scope) []value {
	saved := vm.stack
	vm.stack = nil
	defer func() { vm.stack = saved }()
	vm.eval(ctx, terms, sc)
	collected := make([]value, len(vm.stack))
	for i, v := range vm.stack {
		collected[i] = vm.resolve(v)
	}
	return collected
}

func (vm *VM) keyword(ctx context.Context, name string, sc *scope) {
	switch name {
	case "let":
		n := vm.popName("let")
		sc.define(n)
		vm.push(refValue(n, sc))

	case "global":
		// the pushed reference resolves at the root, so a following store
		// reaches the new slot even when a local binding shadows the name
		n := vm.popName("global")
		root := sc.root()
		root.define(n)
		vm.push(refValue(n, root))

	case "=":
		vm.assign()

	case "fn":
		body := vm.popKind("fn", valBlock, "a block")
		params := vm.popKind("fn", valParams, "a parameter list")
		vm.push(funcValue(params.names, body.body, body.scope))

	case "@":
		vm.call(ctx)

	case "#":
		vm.index()

	case "for":
		vm.forLoop(ctx)

	case "if":
		vm.cond(ctx)

	default:
		b, ok := builtins[name]
		if !ok {
			vm.halt(typeError{op: name, want: "a known operator", got: "nothing"})
		}
		if have := len(vm.stack); have < b.arity {
			vm.halt(underflowError{op: name, want: b.arity, have: have})
		}
		b.run(vm)
	}
}

// assign stores a value through a variable reference.  The declaration form
// `x let 5 =` leaves the target below the value; the chained form `5 x let =`
// leaves it on top.  Both are accepted: the reference is the target, and when
// both operands are references the lower one is.
func (vm *VM) assign() {
	b := vm.pop("=")
	a := vm.pop("=")
	if b.kind == valRef && a.kind != valRef {
		a, b = b, a
	}
	if a.kind != valRef {
		vm.halt(typeError{op: "=", want: "a variable reference", got: a.kind.String()})
	}
	vm.store(a, vm.resolve(b))
}

// call invokes a function: arguments were pushed in source order, so the top
// of stack binds the last parameter.  The operand stack is shared across the
// call boundary; whatever the body leaves pushed is the call's result.
func (vm *VM) call(ctx context.Context) {
	fn := vm.popKind("@", valFunc, "a function")
	if have := len(vm.stack); have < len(fn.names) {
		vm.halt(arityError{params: fn.names, have: have})
	}
	args := make([]value, len(fn.names))
	for i := len(args) - 1; i >= 0; i-- {
		args[i] = vm.popValue("@")
	}
	body := newScope(fn.scope)
	for i, name := range fn.names {
		*body.define(name) = args[i]
	}
	defer vm.enter()()
	vm.eval(ctx, fn.body, body)
}

func (vm *VM) index() {
	idx := vm.popValue("#")
	target := vm.popValue("#")
	if idx.kind != valNum || idx.num != math.Trunc(idx.num) || idx.num < 0 {
		vm.halt(typeError{op: "#", want: "a non-negative integer index", got: idx.String()})
	}
	i := int(idx.num)
	switch target.kind {
	case valArr:
		if i >= len(target.arr) {
			vm.halt(indexError{index: i, size: len(target.arr)})
		}
		vm.push(target.arr[i])
	case valStr:
		runes := []rune(target.str)
		if i >= len(runes) {
			vm.halt(indexError{index: i, size: len(runes)})
		}
		vm.push(strValue(string(runes[i])))
	default:
		vm.halt(typeError{op: "#", want: "an array or string", got: target.kind.String()})
	}
}

func (vm *VM) forLoop(ctx context.Context) {
	body := vm.popKind("for", valBlock, "a block")
	name := vm.popName("for")
	iter := vm.popKind("for", valArr, "an array")
	defer vm.enter()()
	for _, elem := range iter.arr {
		each := newScope(body.scope)
		*each.define(name) = elem
		vm.eval(ctx, body.body, each)
	}
}

func (vm *VM) cond(ctx context.Context) {
	body := vm.popKind("if", valBlock, "a block")
	c := vm.popNum("if")
	if c == 0 {
		return
	}
	defer vm.enter()()
	vm.eval(ctx, body.body, newScope(body.scope))
}

//// Operand stack

func (vm *VM) push(v value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop(op string) value {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(underflowError{op: op, want: 1, have: 0})
	}
	v := vm.stack[i]
	vm.stack = vm.stack[:i]
	return v
}

// resolve replaces a variable reference by the referenced slot's current
// value; all other values pass through.  Non-reference containers are shared,
// so resolving an array-bound name aliases its storage.
func (vm *VM) resolve(v value) value {
	if v.kind != valRef {
		return v
	}
	slot := v.scope.resolve(v.str)
	if slot == nil {
		vm.halt(undefinedError(v.str))
	}
	return *slot
}

func (vm *VM) popValue(op string) value { return vm.resolve(vm.pop(op)) }

// popName takes the raw name off a reference without resolving it; this is
// how let, global, = and for consume identifiers as names.
func (vm *VM) popName(op string) string {
	v := vm.pop(op)
	if v.kind != valRef {
		vm.halt(typeError{op: op, want: "a name", got: v.kind.String()})
	}
	return v.str
}

func (vm *VM) popKind(op string, kind valueKind, want string) value {
	v := vm.popValue(op)
	if v.kind != kind {
		vm.halt(typeError{op: op, want: want, got: v.kind.String()})
	}
	return v
}

func (vm *VM) popNum(op string) float64 {
	return vm.popKind(op, valNum, "a number").num
}

func (vm *VM) store(ref value, v value) {
	slot := ref.scope.resolve(ref.str)
	if slot == nil {
		vm.halt(undefinedError(ref.str))
	}
	*slot = v
	vm.logf("store %v = %v", ref.str, v)
}

//// Halting and limits

func (vm *VM) halt(err error) {
	if vm.out != nil {
		vm.out.Flush() // show whatever printed before the failure
	}
	vm.logf("halt: %v", err)
	panic(vmHaltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// enter guards nested body evaluation (calls, loops, conditionals) against
// runaway recursion, and indents trace logging while inside.
func (vm *VM) enter() func() {
	vm.depth++
	if vm.maxDepth != 0 && vm.depth > vm.maxDepth {
		vm.halt(errDepthLimit)
	}
	if vm.logfn != nil {
		restoreLog := vm.withLogPrefix("	")
		return func() {
			restoreLog()
			vm.depth--
		}
	}
	return func() { vm.depth-- }
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

func (vm *VM) withLogPrefix(prefix string) func() {
	logfn := vm.logfn
	vm.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		vm.logfn = logfn
	}
}

func (vm *VM) writeString(s string) {
	_, err := io.WriteString(vm.out, s)
	vm.haltif(err)
}
