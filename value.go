package lox

import (
	"math"
	"strconv"
)

// ValueKind tags the variant held by a Value. The spine is identical to
// Literal's: a runtime Value is either a leftover identifier reference
// (never actually produced by evaluation, but kept for symmetry with
// Literal), a string, a number, a bool, or nil.
type ValueKind int

const (
	ValueIdentifier ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueNil
)

// Value is a runtime value. Equality is componentwise; cross-kind
// comparisons are never a type error for == or !=.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
}

var Nil = Value{Kind: ValueNil}

func StringValue(s string) Value { return Value{Kind: ValueString, Text: s} }
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Number: n} }
func BoolValue(b bool) Value      { return Value{Kind: ValueBool, Bool: b} }
func IdentifierValue(name string) Value {
	return Value{Kind: ValueIdentifier, Text: name}
}

// valueFromLiteral lifts a parsed Literal into its runtime Value.
func valueFromLiteral(lit Literal) Value {
	switch lit.Kind {
	case LiteralIdentifier:
		return IdentifierValue(lit.Text)
	case LiteralString:
		return StringValue(lit.Text)
	case LiteralNumber:
		return NumberValue(lit.Number)
	case LiteralBool:
		return BoolValue(lit.Bool)
	default:
		return Nil
	}
}

// IsTruthy implements this language's truthiness rule: only Bool(false)
// and Nil are falsy. 0.0, "", and identifiers are truthy.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case ValueNil:
		return false
	case ValueBool:
		return v.Bool
	default:
		return true
	}
}

// Equals implements componentwise equality. Cross-kind comparisons
// return false rather than erroring.
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueNil:
		return true
	case ValueBool:
		return v.Bool == other.Bool
	case ValueNumber:
		return v.Number == other.Number
	case ValueString, ValueIdentifier:
		return v.Text == other.Text
	default:
		return false
	}
}

// String renders a Value the way Print/stringify in the REPL does:
// numbers use the shortest accurate decimal form, bools as true/false,
// nil as "nil", strings/identifiers verbatim.
func (v Value) String() string {
	switch v.Kind {
	case ValueString, ValueIdentifier:
		return v.Text
	case ValueNumber:
		return formatNumber(v.Number)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueNil:
		return "nil"
	default:
		return ""
	}
}

// TypeName names a Value's kind for runtime error messages.
func (v Value) TypeName() string {
	switch v.Kind {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	case ValueNil:
		return "nil"
	case ValueIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// formatNumber renders a float64 using the shortest decimal form that
// round-trips exactly, matching how jlox-style interpreters print
// doubles without a trailing ".0" for whole numbers that came from
// arithmetic on integral inputs where the source language has no
// separate integer type.
func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
