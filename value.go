package main

import (
	"fmt"
	"strings"
)

//// Runtime values
//
// Every runtime value is one variant of a closed tagged union; each operation
// site switches exhaustively on the kind it consumes.  The none kind is the
// sentinel value of a slot introduced by let/global before its first
// assignment.

type valueKind uint8

const (
	valNone valueKind = iota
	valNum
	valStr
	valArr
	valParams
	valBlock
	valFunc
	valRef
)

var valueKindNames = [...]string{
	"none",
	"number",
	"string",
	"array",
	"parameter list",
	"block",
	"fn",
	"ref",
}

func (k valueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("valueKind(%d)", uint8(k))
}

type value struct {
	kind  valueKind
	num   float64  // valNum
	str   string   // valStr payload; valRef name
	arr   []value  // valArr elements, shared by reference between bindings
	names []string // valParams / valFunc parameter names
	body  []term   // valBlock / valFunc body, shared with every closure over it
	scope *scope   // valBlock / valFunc captured scope; valRef resolution scope
}

func numValue(f float64) value            { return value{kind: valNum, num: f} }
func strValue(s string) value             { return value{kind: valStr, str: s} }
func arrValue(elems []value) value        { return value{kind: valArr, arr: elems} }
func paramsValue(names []string) value    { return value{kind: valParams, names: names} }
func refValue(name string, sc *scope) value {
	return value{kind: valRef, str: name, scope: sc}
}
func closureValue(body []term, sc *scope) value {
	return value{kind: valBlock, body: body, scope: sc}
}
func funcValue(params []string, body []term, sc *scope) value {
	return value{kind: valFunc, names: params, body: body, scope: sc}
}

func (v value) String() string {
	switch v.kind {
	case valNone:
		return "none"
	case valNum:
		return formatNum(v.num)
	case valStr:
		return v.str
	case valArr:
		if len(v.arr) == 0 {
			return "[]"
		}
		parts := make([]string, len(v.arr))
		for i, elem := range v.arr {
			parts[i] = elem.String()
		}
		return "[ " + strings.Join(parts, " ") + " ]"
	case valParams:
		if len(v.names) == 0 {
			return "()"
		}
		return "( " + strings.Join(v.names, " ") + " )"
	case valBlock:
		return formatGroup("{", v.body, "}")
	case valFunc:
		if len(v.names) == 0 {
			return "fn()"
		}
		return "fn( " + strings.Join(v.names, " ") + " )"
	case valRef:
		return v.str
	}
	return fmt.Sprintf("value(%d)", uint8(v.kind))
}

//// Scopes
//
// A scope maps names to mutable slots and chains to its lexical parent.  The
// root scope has no parent and lives for the whole run; let introduces a slot
// in the innermost scope, global always in the root.  Lookup walks innermost
// first and never descends.

type scope struct {
	parent *scope
	vars   map[string]*value
}

func newScope(parent *scope) *scope { return &scope{parent: parent} }

// define introduces (or rebinds) a slot for name in this scope, returning it.
// The fresh slot holds the none sentinel until first assignment.
func (sc *scope) define(name string) *value {
	if sc.vars == nil {
		sc.vars = make(map[string]*value)
	}
	slot := &value{}
	sc.vars[name] = slot
	return slot
}

// resolve finds the innermost slot bound to name, or nil if undeclared.
func (sc *scope) resolve(name string) *value {
	for s := sc; s != nil; s = s.parent {
		if slot, ok := s.vars[name]; ok {
			return slot
		}
	}
	return nil
}

func (sc *scope) root() *scope {
	s := sc
	for s.parent != nil {
		s = s.parent
	}
	return s
}
