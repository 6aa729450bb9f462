package sw

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"
)

// Field is the arithmetic capability the point gadgets are written
// against. The element type El is either [frontend.Variable], in which case
// values live directly in the builder's field and every operation is a
// single circuit primitive, or [emulated.Element] of some prime field, in
// which case values are limb decompositions and multiplication is
// expensive.
//
// The methods do not modify their inputs.
type Field[El any] interface {
	Add(a, b *El) *El
	Sub(a, b *El) *El
	// Mul multiplies and reduces the result to canonical form.
	Mul(a, b *El) *El
	// MulNoReduce multiplies without reducing the result. Callers are
	// responsible for eventually collapsing the limb growth, either with
	// Reduce or through an equality assertion. Equivalent to Mul in the
	// native field.
	MulNoReduce(a, b *El) *El
	// Reduce collapses accumulated limb growth back to canonical form. A
	// no-op in the native field.
	Reduce(a *El) *El
	// Div returns a/b, realized as a multiplication by the inverse of b.
	// Witness generation fails when b is zero.
	Div(a, b *El) *El
	// Select returns a when bit is set and b otherwise.
	Select(bit frontend.Variable, a, b *El) *El
	AssertIsEqual(a, b *El)
	// NewElement constructs a constant element from a plain value.
	NewElement(v interface{}) *El
}

// NativeField implements [Field] directly over the builder's field.
type NativeField struct {
	api frontend.API
}

// NewNative returns a [Field] over the builder's own field.
func NewNative(api frontend.API) *NativeField {
	return &NativeField{api: api}
}

func (f *NativeField) Add(a, b *frontend.Variable) *frontend.Variable {
	r := f.api.Add(*a, *b)
	return &r
}

func (f *NativeField) Sub(a, b *frontend.Variable) *frontend.Variable {
	r := f.api.Sub(*a, *b)
	return &r
}

func (f *NativeField) Mul(a, b *frontend.Variable) *frontend.Variable {
	r := f.api.Mul(*a, *b)
	return &r
}

// MulNoReduce is equivalent to Mul: native multiplication is always
// canonical.
func (f *NativeField) MulNoReduce(a, b *frontend.Variable) *frontend.Variable {
	return f.Mul(a, b)
}

func (f *NativeField) Reduce(a *frontend.Variable) *frontend.Variable {
	return a
}

func (f *NativeField) Div(a, b *frontend.Variable) *frontend.Variable {
	r := f.api.Div(*a, *b)
	return &r
}

func (f *NativeField) Select(bit frontend.Variable, a, b *frontend.Variable) *frontend.Variable {
	r := f.api.Select(bit, *a, *b)
	return &r
}

func (f *NativeField) AssertIsEqual(a, b *frontend.Variable) {
	f.api.AssertIsEqual(*a, *b)
}

func (f *NativeField) NewElement(v interface{}) *frontend.Variable {
	r := frontend.Variable(v)
	return &r
}

// EmulatedField implements [Field] for elements of the prime field T
// represented by limbs over the builder's field.
type EmulatedField[T emulated.FieldParams] struct {
	f *emulated.Field[T]
}

// NewEmulated returns a [Field] emulating the prime field T.
func NewEmulated[T emulated.FieldParams](api frontend.API) (*EmulatedField[T], error) {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return nil, fmt.Errorf("new emulated field: %w", err)
	}
	return &EmulatedField[T]{f: f}, nil
}

// NewEmulatedFromField wraps an existing emulated field instance.
func NewEmulatedFromField[T emulated.FieldParams](f *emulated.Field[T]) *EmulatedField[T] {
	return &EmulatedField[T]{f: f}
}

func (ef *EmulatedField[T]) Add(a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Add(a, b)
}

func (ef *EmulatedField[T]) Sub(a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Sub(a, b)
}

func (ef *EmulatedField[T]) Mul(a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Mul(a, b)
}

func (ef *EmulatedField[T]) MulNoReduce(a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.MulNoReduce(a, b)
}

func (ef *EmulatedField[T]) Reduce(a *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Reduce(a)
}

func (ef *EmulatedField[T]) Div(a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Div(a, b)
}

func (ef *EmulatedField[T]) Select(bit frontend.Variable, a, b *emulated.Element[T]) *emulated.Element[T] {
	return ef.f.Select(bit, a, b)
}

func (ef *EmulatedField[T]) AssertIsEqual(a, b *emulated.Element[T]) {
	ef.f.AssertIsEqual(a, b)
}

func (ef *EmulatedField[T]) NewElement(v interface{}) *emulated.Element[T] {
	return ef.f.NewElement(v)
}

// GetField returns the [Field] implementation corresponding to the element
// type El for the given builder.
func GetField[El any](api frontend.API) (Field[El], error) {
	var ret Field[El]
	switch s := any(&ret).(type) {
	case *Field[frontend.Variable]:
		*s = NewNative(api)
	case *Field[emulated.Element[emparams.BLS12381Fp]]:
		f, err := NewEmulated[emparams.BLS12381Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated field: %w", err)
		}
		*s = f
	case *Field[emulated.Element[emparams.BLS12377Fp]]:
		f, err := NewEmulated[emparams.BLS12377Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated field: %w", err)
		}
		*s = f
	case *Field[emulated.Element[emparams.BN254Fp]]:
		f, err := NewEmulated[emparams.BN254Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated field: %w", err)
		}
		*s = f
	case *Field[emulated.Element[emparams.BW6761Fp]]:
		f, err := NewEmulated[emparams.BW6761Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated field: %w", err)
		}
		*s = f
	default:
		return ret, fmt.Errorf("unknown type parametrisation")
	}
	return ret, nil
}
