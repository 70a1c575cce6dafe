package main

import (
	"fmt"
	"io"
	"sort"
)

// vmDumper writes a human readable snapshot of interpreter state: the operand
// stack top-down, then the global scope.  Failing tests dump through it.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")

	fmt.Fprintf(dump.out, "# Stack (%v)\n", len(dump.vm.stack))
	for i := len(dump.vm.stack) - 1; i >= 0; i-- {
		v := dump.vm.stack[i]
		fmt.Fprintf(dump.out, "  @%v %v %v\n", i, v.kind, v)
	}

	dump.scope("Global Scope", dump.vm.root)
}

func (dump vmDumper) scope(label string, sc *scope) {
	fmt.Fprintf(dump.out, "# %v (%v)\n", label, len(sc.vars))
	names := make([]string, 0, len(sc.vars))
	for name := range sc.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slot := sc.vars[name]
		fmt.Fprintf(dump.out, "  %v = %v %v\n", name, slot.kind, *slot)
	}
}
