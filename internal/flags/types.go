package flags

import (
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	default:
		return "absent"
	}
}

// Value is a single parsed flag value. The zero Value is Absent.
type Value struct {
	kind Kind
	str  string
	num  int
	flag bool
}

// String wraps s as a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps n as an integer Value.
func Int(n int) Value { return Value{kind: KindInt, num: n} }

// Bool wraps b as a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the value is anything other than Absent.
func (v Value) Present() bool { return v.kind != KindAbsent }

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer payload when v is an integer.
func (v Value) AsInt() (int, bool) { return v.num, v.kind == KindInt }

// AsBool returns the boolean payload when v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// Interface returns the payload as a plain Go value, nil for Absent.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.Itoa(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Flags maps recognized flag names to their parsed values.
type Flags map[string]Value

// Get returns the value for name, Absent when the flag was not supplied.
func (f Flags) Get(name string) Value {
	return f[name]
}

// Has reports whether name was supplied or defaulted.
func (f Flags) Has(name string) bool {
	return f[name].Present()
}

// List splits a comma-separated string flag such as url, dropping blanks.
func (f Flags) List(name string) []string {
	raw, ok := f[name].AsString()
	if !ok {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Clone returns an independent copy of f.
func (f Flags) Clone() Flags {
	if f == nil {
		return nil
	}
	out := make(Flags, len(f))
	for name, value := range f {
		out[name] = value
	}
	return out
}

// Names returns the supplied flag names in sorted order.
func (f Flags) Names() []string {
	names := make([]string, 0, len(f))
	for name, value := range f {
		if value.Present() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Map converts f into plain Go values keyed by flag name, skipping Absent entries.
func (f Flags) Map() map[string]any {
	out := make(map[string]any, len(f))
	for name, value := range f {
		if value.Present() {
			out[name] = value.Interface()
		}
	}
	return out
}
