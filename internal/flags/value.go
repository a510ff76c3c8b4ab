package flags

import (
	"slices"
	"strconv"

	"github.com/ejmvar/ey-cli/internal/catalog"
)

// flagValue is the kingpin.Value bound to one table entry. Set decodes and
// validates the raw token and records it in the shared result.
type flagValue struct {
	spec Spec
	into Flags
}

func (v *flagValue) Set(raw string) error {
	value, err := decode(v.spec, raw)
	if err != nil {
		return err
	}
	v.into[v.spec.Name] = value
	return nil
}

func (v *flagValue) String() string {
	return v.into.Get(v.spec.Name).String()
}

// IsBoolFlag lets kingpin parse switches without a value token.
func (v *flagValue) IsBoolFlag() bool {
	return v.spec.Kind == KindBool
}

// IsCumulative keeps kingpin from rejecting repeats: a repeated switch is
// still plain presence and a repeated value flag keeps the last value.
func (v *flagValue) IsCumulative() bool {
	return true
}

func decode(spec Spec, raw string) (Value, error) {
	switch spec.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Value{}, newFlagError(ErrTypeMismatch, spec.Name, raw, nil)
		}
		return Int(n), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, newFlagError(ErrTypeMismatch, spec.Name, raw, nil)
		}
		return Bool(b), nil
	}

	switch spec.Constraint {
	case ConstraintOneOf:
		if !slices.Contains(spec.Allowed, raw) {
			return Value{}, newFlagError(ErrInvalidEnumValue, spec.Name, raw, spec.Allowed)
		}
	case ConstraintInstanceSize:
		if !catalog.IsInstanceSize(raw) {
			return Value{}, newFlagError(ErrInvalidInstanceSize, spec.Name, raw, catalog.InstanceSizes())
		}
	}
	return String(raw), nil
}
