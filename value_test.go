package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_value_String(t *testing.T) {
	body := []term{identTerm("a"), identTerm("b"), keywordTerm("-")}
	for _, tc := range []struct {
		name string
		val  value
		want string
	}{
		{"none", value{}, "none"},
		{"integer number", numValue(5), "5"},
		{"fractional number", numValue(-0.5), "-0.5"},
		{"string is raw", strValue("hello world"), "hello world"},
		{"array", arrValue([]value{numValue(1), strValue("s")}), "[ 1 s ]"},
		{"empty array", arrValue(nil), "[]"},
		{"nested array", arrValue([]value{arrValue([]value{numValue(2)})}), "[ [ 2 ] ]"},
		{"params", paramsValue([]string{"a", "b"}), "( a b )"},
		{"empty params", paramsValue(nil), "()"},
		{"block", closureValue(body, nil), "{ a b - }"},
		{"function", funcValue([]string{"a", "b"}, body, nil), "fn( a b )"},
		{"niladic function", funcValue(nil, nil, nil), "fn()"},
		{"ref prints its name", refValue("x", nil), "x"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.val.String())
		})
	}
}

func Test_scope(t *testing.T) {
	root := newScope(nil)

	t.Run("resolve before define", func(t *testing.T) {
		assert.Nil(t, root.resolve("x"))
	})

	t.Run("define yields a none slot", func(t *testing.T) {
		slot := root.define("x")
		require.NotNil(t, slot)
		assert.Equal(t, value{}, *slot)
		assert.Same(t, slot, root.resolve("x"))
	})

	t.Run("slots are mutable in place", func(t *testing.T) {
		*root.resolve("x") = numValue(5)
		assert.Equal(t, numValue(5), *root.resolve("x"))
	})

	t.Run("child resolves through the chain", func(t *testing.T) {
		child := newScope(root)
		assert.Same(t, root.resolve("x"), child.resolve("x"))
	})

	t.Run("child define shadows without clobbering", func(t *testing.T) {
		child := newScope(root)
		*child.define("x") = numValue(9)
		assert.Equal(t, numValue(9), *child.resolve("x"))
		assert.Equal(t, numValue(5), *root.resolve("x"))
	})

	t.Run("parent never sees child names", func(t *testing.T) {
		child := newScope(root)
		child.define("y")
		assert.Nil(t, root.resolve("y"))
	})

	t.Run("redefining replaces the slot", func(t *testing.T) {
		old := root.resolve("x")
		slot := root.define("x")
		assert.False(t, old == slot, "expected a fresh slot")
		assert.Equal(t, value{}, *slot)
	})

	t.Run("root walks all the way up", func(t *testing.T) {
		grandchild := newScope(newScope(root))
		assert.Same(t, root, grandchild.root())
		assert.Same(t, root, root.root())
	})
}
