package option

import (
	"errors"
	"math"
	"strconv"
)

var ErrNoSuchMatchPattern = errors.New("no such match pattern")
var ErrCannotMatchUnsetValue = errors.New("cannot match unset value")

type MaybeOption int

const (
	None MaybeOption = iota
	Some
	Error
)

// Maybe is a type used for matching of optional types.
// It will match `Some` if a value is set, `None` if it is unset, or `Error`
// if evaluating one of the other branches failed.
type Maybe map[MaybeOption]interface{}

// Type is a type for optional values.
type Type interface {
	Match(choices Maybe) (interface{}, error)
	IsNone() bool
}

// Match evaluates the branch of maybe selected by the state of o.
//
// Branch values may be plain values or functions of type
//
//	func(interface{}) (interface{}, error)
//
// which are called with o. An error returned from a branch is handed to the
// `Error` branch, if present.
func (maybe Maybe) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		tracer().Debugf("option %v is None", o)
		if expr, ok := maybe[None]; ok {
			value, err = valueOrExpr(expr, o)
		} else {
			err = ErrCannotMatchUnsetValue
		}
		return
	}
	expr, ok := maybe[Some]
	if !ok {
		return nil, ErrNoSuchMatchPattern
	}
	if value, err = valueOrExpr(expr, o); err != nil {
		tracer().Debugf("option %v: %v", o, err)
		if expr, ok := maybe[Error]; ok {
			value, err = valueOrExpr(expr, err)
		}
	}
	return
}

func valueOrExpr(op interface{}, arg interface{}) (interface{}, error) {
	if f, ok := op.(func(interface{}) (interface{}, error)); ok {
		return f(arg)
	}
	return op, nil
}

// --- Int64T-----------------------------------------------------------------

// Int64T is an option type for int64.
type Int64T int64

// Int64None is used as an in-band null value for type int64 for optional integers.
const Int64None int64 = math.MaxInt64

// SomeInt64 creates an optional int64 with an initial value of x.
func SomeInt64(x int64) Int64T {
	return Int64T(x)
}

// Int64 creates an optional int64 without an initial value.
func Int64() Int64T {
	return Int64T(Int64None)
}

func (o Int64T) Match(choices Maybe) (interface{}, error) {
	return choices.Match(o)
}

// Unwrap returns the value of o. For an unset option this is Int64None.
func (o Int64T) Unwrap() int64 {
	return int64(o)
}

// OrElse returns the value of o, or x if o is unset.
func (o Int64T) OrElse(x int64) int64 {
	if o.IsNone() {
		return x
	}
	return int64(o)
}

// IsNone returns true if o is unset.
func (o Int64T) IsNone() bool {
	return o == Int64T(Int64None)
}

func (o Int64T) String() string {
	if o.IsNone() {
		return "Int64.None"
	}
	return strconv.FormatInt(int64(o), 10)
}
