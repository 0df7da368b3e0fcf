package datatype

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Data holds exactly one value of a fixed registered type.
type Data struct {
	desc *TypeDescriptor
	val  cty.Value
}

// Type returns the descriptor of the type this container was created with.
func (d *Data) Type() *TypeDescriptor { return d.desc }

// Value returns the current value.
func (d *Data) Value() cty.Value { return d.val }

// Set replaces the value. The value must be wholly known, of exactly the
// container's cty type and accepted by the type's validator.
func (d *Data) Set(v cty.Value) error {
	if !v.Type().Equals(d.desc.ty) {
		return &MismatchError{Want: d.desc, Got: v.Type().FriendlyName()}
	}
	if !v.IsWhollyKnown() {
		return &MismatchError{Want: d.desc, Got: "unknown value"}
	}
	if err := d.desc.Validate(v); err != nil {
		return &MismatchError{Want: d.desc, Got: "invalid " + v.Type().FriendlyName(), Reason: err}
	}
	d.val = v
	return nil
}

// Coerce converts v to the container's type with cty's conversion rules
// before storing it. Used for values that come from configuration, where a
// literal like `2` has to land in a Float.
func (d *Data) Coerce(v cty.Value) error {
	conv, err := convert.Convert(v, d.desc.ty)
	if err != nil {
		return &MismatchError{Want: d.desc, Got: v.Type().FriendlyName(), Reason: err}
	}
	return d.Set(conv)
}

// Reset restores the type's default value.
func (d *Data) Reset() {
	d.val = d.desc.factory()
}

// Encode stores a native Go value. For capsule types v must be a pointer to
// the encapsulated Go type (or a nil pointer, which stores null).
func (d *Data) Encode(v any) error {
	ty := d.desc.ty
	if ty.IsCapsuleType() {
		rv := reflect.ValueOf(v)
		want := reflect.PointerTo(ty.EncapsulatedType())
		if !rv.IsValid() || rv.Type() != want {
			return &MismatchError{Want: d.desc, Got: fmt.Sprintf("%T", v)}
		}
		if rv.IsNil() {
			d.val = cty.NullVal(ty)
			return nil
		}
		d.val = cty.CapsuleVal(ty, v)
		return nil
	}

	val, err := toCty(v, ty)
	if err != nil {
		return &MismatchError{Want: d.desc, Got: fmt.Sprintf("%T", v), Reason: err}
	}
	return d.Set(val)
}

// toCty is gocty.ToCtyValue without its panic on NaN, which cty numbers
// cannot represent.
func toCty(v any, ty cty.Type) (val cty.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return gocty.ToCtyValue(v, ty)
}

// Decode reads the value into target, which must be a pointer. For capsule
// types target must be a pointer to a pointer of the encapsulated Go type.
func (d *Data) Decode(target any) error {
	ty := d.desc.ty
	if !ty.IsCapsuleType() {
		if err := gocty.FromCtyValue(d.val, target); err != nil {
			return &MismatchError{Want: d.desc, Got: fmt.Sprintf("%T", target), Reason: err}
		}
		return nil
	}

	tv := reflect.ValueOf(target)
	want := reflect.PointerTo(reflect.PointerTo(ty.EncapsulatedType()))
	if !tv.IsValid() || tv.Type() != want || tv.IsNil() {
		return &MismatchError{Want: d.desc, Got: fmt.Sprintf("%T", target)}
	}
	if d.val.IsNull() {
		tv.Elem().Set(reflect.Zero(tv.Elem().Type()))
		return nil
	}
	tv.Elem().Set(reflect.ValueOf(d.val.EncapsulatedValue()))
	return nil
}

// Get decodes the container's value as T.
func Get[T any](d *Data) (T, error) {
	var out T
	err := d.Decode(&out)
	return out, err
}

// Put encodes v into the container.
func Put[T any](d *Data, v T) error {
	return d.Encode(v)
}

// IsMismatch reports whether err is a type mismatch.
func IsMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
