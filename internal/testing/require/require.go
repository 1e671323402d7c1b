// Package require implements a minimal, allocation-conscious assertion
// helper in the style of testify/require, without the dependency. The
// library packages' tests use it instead of stretchr/testify directly so
// that hot-path benchmarks (e.g. leb128) can assert zero-allocation
// behavior without the assertion library itself skewing the count.
package require

import (
	"errors"
	"fmt"
	"reflect"
)

// TestingT is satisfied by *testing.T and also by a fake usable in this
// package's own tests.
type TestingT interface {
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Helper()
}

// CapturePanic runs fn and converts any panic into an error, or returns nil
// if fn didn't panic.
func CapturePanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	fn()
	return
}

func fail(t TestingT, format string, args ...interface{}) {
	t.Helper()
	t.Fatalf(format, args...)
}

// Equal fails unless expected and actual are deeply equal.
func Equal(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return
	}
	suffix := formatMsg(msgAndArgs...)
	if actual == nil {
		fail(t, "expected %#v, but was nil%s", expected, suffix)
		return
	}
	fail(t, "unexpected value%s\nexpected:\n\t%#v\nwas:\n\t%#v\n", suffix, expected, actual)
}

// NotEqual fails if expected and actual are deeply equal.
func NotEqual(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		return
	}
	fail(t, "expected values to differ, but both were %#v%s", actual, formatMsg(msgAndArgs...))
}

// Same fails unless expected and actual point at the same object.
func Same(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if expected == actual {
		return
	}
	fail(t, "expected %#v and %#v to be the same%s", expected, actual, formatMsg(msgAndArgs...))
}

// NotSame fails if expected and actual point at the same object.
func NotSame(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if expected != actual {
		return
	}
	fail(t, "expected %#v and %#v not to be the same%s", expected, actual, formatMsg(msgAndArgs...))
}

// True fails unless v is true.
func True(t TestingT, v bool, msgAndArgs ...interface{}) {
	t.Helper()
	if v {
		return
	}
	fail(t, "expected true%s", formatMsg(msgAndArgs...))
}

// False fails unless v is false.
func False(t TestingT, v bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !v {
		return
	}
	fail(t, "expected false%s", formatMsg(msgAndArgs...))
}

// Nil fails unless v is nil.
func Nil(t TestingT, v interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(v) {
		return
	}
	fail(t, "expected nil, but was %#v%s", v, formatMsg(msgAndArgs...))
}

// NotNil fails if v is nil.
func NotNil(t TestingT, v interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(v) {
		return
	}
	fail(t, "expected non-nil value%s", formatMsg(msgAndArgs...))
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// Zero fails unless v is the zero value for its type.
func Zero(t TestingT, v interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if v == nil || reflect.DeepEqual(v, reflect.Zero(reflect.TypeOf(v)).Interface()) {
		return
	}
	fail(t, "expected zero value, but was %#v%s", v, formatMsg(msgAndArgs...))
}

// Error fails unless err is non-nil.
func Error(t TestingT, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		return
	}
	fail(t, "expected an error%s", formatMsg(msgAndArgs...))
}

// NoError fails unless err is nil.
func NoError(t TestingT, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		return
	}
	fail(t, "unexpected error: %v%s", err, formatMsg(msgAndArgs...))
}

// EqualError fails unless err's message equals expected.
func EqualError(t TestingT, err error, expected string, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		fail(t, "expected error %q, but there was none%s", expected, formatMsg(msgAndArgs...))
		return
	}
	if err.Error() == expected {
		return
	}
	fail(t, "expected error %q, but was %q%s", expected, err.Error(), formatMsg(msgAndArgs...))
}

// ErrorIs fails unless errors.Is(err, target).
func ErrorIs(t TestingT, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if errors.Is(err, target) {
		return
	}
	fail(t, "expected error chain to include %v, but was %v%s", target, err, formatMsg(msgAndArgs...))
}

// Contains fails unless s contains substr.
func Contains(t TestingT, s, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return
		}
	}
	fail(t, "expected %q to contain %q%s", s, substr, formatMsg(msgAndArgs...))
}

func formatMsg(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprintf(": %v", msgAndArgs[0])
	}
	return ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
}
