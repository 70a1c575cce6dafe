package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_isolate(t *testing.T) {
	errBang := errors.New("bang")
	for _, tc := range []struct {
		name      string
		err       string
		wraps     error
		haveStack bool
		fun       func() error
	}{
		{
			name: "plain return",
			fun:  func() error { return nil },
		},
		{
			name: "error return",
			err:  "bang",
			fun:  func() error { return errBang },
		},
		{
			name:      "panic value",
			err:       "panic value paniced: hello",
			haveStack: true,
			fun:       func() error { panic("hello") },
		},
		{
			name:      "panic error",
			err:       "panic error paniced: bang",
			wraps:     errBang,
			haveStack: true,
			fun:       func() error { panic(errBang) },
		},
		{
			// the evaluator's halt path: the sentinel kind must stay
			// reachable through panicError and the halt wrapper
			name:      "halt panic",
			err:       `halt panic paniced: halted: undefined variable "y"`,
			wraps:     errUndefined,
			haveStack: true,
			fun:       func() error { panic(vmHaltError{undefinedError("y")}) },
		},
		{
			name:      "runtime panic",
			err:       "runtime panic paniced: runtime error: index out of range [1] with length 0",
			haveStack: true,
			fun:       func() error { _ = ([]int)(nil)[1]; return nil },
		},
		{
			name: "goexit",
			err:  "goexit called runtime.Goexit",
			fun:  func() error { runtime.Goexit(); return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := isolate(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
			}
			if tc.wraps != nil {
				assert.True(t, errors.Is(err, tc.wraps),
					"expected the chain to reach %v, got %+v", tc.wraps, err)
			}
			stack := panicErrorStack(err)
			if tc.haveStack {
				assert.NotEqual(t, "", stack, "expected a captured stack")
			} else {
				assert.Equal(t, "", stack, "expected no captured stack")
			}
		})
	}
}

func Test_isolate_unnamed(t *testing.T) {
	err := isolate("", func() error { runtime.Goexit(); return nil })
	assert.EqualError(t, err, "runtime.Goexit called")

	err = isolate("", func() error { panic("hello") })
	assert.EqualError(t, err, "paniced: hello")
}

func Test_isolate_stacktrace(t *testing.T) {
	err := isolate("", func() error {
		panic("nope")
	})
	require.Error(t, err, "must have an isolate error")

	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), panicErrorStack(err)),
		"expected verbose format to end with the captured stack")
}
