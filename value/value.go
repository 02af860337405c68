// Package value holds typed cell values.
//
// A Value is a small closed union: it carries exactly one of a fixed set of kinds. The zero Value is
// Null. Values are comparable with ==.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// ErrSyntax is wrapped by Parse when text is not valid for a kind without its own parser.
var ErrSyntax = errors.New("value: invalid syntax")

// Kind is the type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindDouble
	KindUInt
	KindLong
	KindBool
	KindByte
	KindChar
	KindStr
	KindDate
)

var kindNames = [...]string{"null", "int", "float", "double", "uint", "long", "bool", "byte", "char", "str", "date"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind with this lower-case name, e.g., "int" or "str".
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindNull, false
}

// TypeMismatchError is returned when a Value is not of the expected Kind.
type TypeMismatchError struct {
	Expected Kind
	Found    Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// Value is a single typed value.
type Value struct {
	kind Kind
	bits uint64 // numeric kinds, bool and char
	str  string
}

// Null is the empty Value.
var Null = Value{}

func Int(v int32) Value      { return Value{kind: KindInt, bits: uint64(int64(v))} }
func Float(v float32) Value  { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }
func Double(v float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(v)} }
func UInt(v uint32) Value    { return Value{kind: KindUInt, bits: uint64(v)} }
func Long(v int64) Value     { return Value{kind: KindLong, bits: uint64(v)} }
func Byte(v uint8) Value     { return Value{kind: KindByte, bits: uint64(v)} }
func Char(v rune) Value      { return Value{kind: KindChar, bits: uint64(v)} }
func Str(v string) Value     { return Value{kind: KindStr, str: v} }

// Date is a timestamp in caller-defined units, usually seconds since the epoch.
func Date(v uint64) Value { return Value{kind: KindDate, bits: v} }

func Bool(v bool) Value {
	out := Value{kind: KindBool}
	if v {
		out.bits = 1
	}
	return out
}

// Zero returns the default Value for this kind: zero, false, the NUL char or the empty string.
func Zero(k Kind) Value {
	if k == KindStr {
		return Str("")
	}
	return Value{kind: k}
}

// Kind returns the kind of this Value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns whether this is the Null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) check(k Kind) error {
	if v.kind != k {
		return &TypeMismatchError{Expected: k, Found: v.kind}
	}
	return nil
}

func (v Value) Int() (int32, error) {
	return int32(int64(v.bits)), v.check(KindInt)
}

func (v Value) Float() (float32, error) {
	return math.Float32frombits(uint32(v.bits)), v.check(KindFloat)
}

func (v Value) Double() (float64, error) {
	return math.Float64frombits(v.bits), v.check(KindDouble)
}

func (v Value) UInt() (uint32, error) {
	return uint32(v.bits), v.check(KindUInt)
}

func (v Value) Long() (int64, error) {
	return int64(v.bits), v.check(KindLong)
}

func (v Value) Bool() (bool, error) {
	return v.bits != 0, v.check(KindBool)
}

func (v Value) Byte() (uint8, error) {
	return uint8(v.bits), v.check(KindByte)
}

func (v Value) Char() (rune, error) {
	return rune(v.bits), v.check(KindChar)
}

func (v Value) Str() (string, error) {
	return v.str, v.check(KindStr)
}

func (v Value) Date() (uint64, error) {
	return v.bits, v.check(KindDate)
}

// String formats this Value for display. Floats show two decimal places, doubles four.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(int64(int32(int64(v.bits))), 10)
	case KindFloat:
		return fmt.Sprintf("%.2f", math.Float32frombits(uint32(v.bits)))
	case KindDouble:
		return fmt.Sprintf("%.4f", math.Float64frombits(v.bits))
	case KindUInt, KindByte, KindDate:
		return strconv.FormatUint(v.bits, 10)
	case KindLong:
		return strconv.FormatInt(int64(v.bits), 10)
	case KindBool:
		return strconv.FormatBool(v.bits != 0)
	case KindChar:
		return string(rune(v.bits))
	case KindStr:
		return v.str
	}
	return "null"
}

// Parse reads text as a Value of the given kind.
// Text "" or "null" always parses as Null.
func Parse(k Kind, text string) (Value, error) {
	if text == "" || text == "null" {
		return Null, nil
	}

	var (
		out Value
		err error
	)
	switch k {
	case KindInt:
		var v int64
		v, err = strconv.ParseInt(text, 10, 32)
		out = Int(int32(v))
	case KindFloat:
		var v float64
		v, err = strconv.ParseFloat(text, 32)
		out = Float(float32(v))
	case KindDouble:
		var v float64
		v, err = strconv.ParseFloat(text, 64)
		out = Double(v)
	case KindUInt:
		var v uint64
		v, err = strconv.ParseUint(text, 10, 32)
		out = UInt(uint32(v))
	case KindLong:
		var v int64
		v, err = strconv.ParseInt(text, 10, 64)
		out = Long(v)
	case KindBool:
		var v bool
		v, err = strconv.ParseBool(text)
		out = Bool(v)
	case KindByte:
		var v uint64
		v, err = strconv.ParseUint(text, 10, 8)
		out = Byte(uint8(v))
	case KindChar:
		r, size := utf8.DecodeRuneInString(text)
		if size != len(text) || r == utf8.RuneError {
			err = ErrSyntax
		}
		out = Char(r)
	case KindStr:
		out = Str(text)
	case KindDate:
		var v uint64
		v, err = strconv.ParseUint(text, 10, 64)
		out = Date(v)
	default:
		err = ErrSyntax
	}

	if err != nil {
		return Null, fmt.Errorf("value: cannot parse %q as %s: %w", text, k, err)
	}
	return out, nil
}
