// Package optional provides a present/absent wrapper for partial updates, so
// "not supplied" is never confused with a zero value.
package optional

type Value[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr treats a nil pointer as absent.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (v Value[T]) IsSet() bool {
	return v.set
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// Or returns the wrapped value when present and fallback otherwise.
func (v Value[T]) Or(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}
