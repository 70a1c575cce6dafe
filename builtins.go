package main

import "math"

//// Builtin registry
//
// Builtins are the operator keywords without structural meaning: each has a
// fixed arity, pops that many operands, and pushes its result or performs its
// side effect.  The lexer consults the same table when classifying words, so
// a builtin name can never be shadowed by a variable.

type builtin struct {
	name  string
	arity int
	run   func(vm *VM)
}

var builtins = make(map[string]builtin)

func init() {
	for _, b := range []builtin{
		binop("+", func(a, b float64) float64 { return a + b }),
		binop("-", func(a, b float64) float64 { return a - b }),
		binop("*", func(a, b float64) float64 { return a * b }),
		binop("/", func(a, b float64) float64 { return a / b }),
		binop("%", math.Mod),
		compound("+=", func(a, b float64) float64 { return a + b }),
		compound("-=", func(a, b float64) float64 { return a - b }),
		compound("*=", func(a, b float64) float64 { return a * b }),
		compound("/=", func(a, b float64) float64 { return a / b }),
		{"!", 1, (*VM).invert},
		{"print", 1, (*VM).print},
		{"println", 1, (*VM).println},
	} {
		builtins[b.name] = b
	}
}

// binop pops b then a and pushes op(a, b); `3 4 -` leaves -1.
func binop(name string, op func(a, b float64) float64) builtin {
	return builtin{name: name, arity: 2, run: func(vm *VM) {
		b := vm.popNum(name)
		a := vm.popNum(name)
		vm.push(numValue(op(a, b)))
	}}
}

// compound pops a value and a variable reference, applies op against the
// slot's current value, and stores the result back; `x 3 +=` adds 3 to x.
func compound(name string, op func(a, b float64) float64) builtin {
	return builtin{name: name, arity: 2, run: func(vm *VM) {
		v := vm.popNum(name)
		ref := vm.pop(name)
		if ref.kind != valRef {
			vm.halt(typeError{op: name, want: "a variable reference", got: ref.kind.String()})
		}
		cur := vm.resolve(ref)
		if cur.kind != valNum {
			vm.halt(typeError{op: name, want: "a number", got: cur.kind.String()})
		}
		vm.store(ref, numValue(op(cur.num, v)))
	}}
}

// invert maps zero to one and anything else to zero.
func (vm *VM) invert() {
	if vm.popNum("!") == 0 {
		vm.push(numValue(1))
	} else {
		vm.push(numValue(0))
	}
}

func (vm *VM) print()   { vm.writeString(vm.popValue("print").String()) }
func (vm *VM) println() { vm.writeString(vm.popValue("println").String() + "\n") }
