package Go_Ordered

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrEmpty           = errors.New("container is empty")
	ErrKeyAbsent       = errors.New("key is absent")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// EmptyError is returned when Op needs at least one element.
type EmptyError struct {
	Op string
}

func (e EmptyError) Error() string {
	return fmt.Sprintf("%s: container is empty", e.Op)
}

func (e EmptyError) Is(target error) bool { return target == ErrEmpty }

// KeyAbsentError is returned by At when the key isn't stored.
type KeyAbsentError[K any] struct {
	Key K
}

func (e KeyAbsentError[K]) Error() string {
	return fmt.Sprintf("key %v is absent", e.Key)
}

func (e KeyAbsentError[K]) Is(target error) bool { return target == ErrKeyAbsent }

// IndexError is returned when Index isn't in [0, Len).
type IndexError struct {
	Index, Len int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// RangeError is returned for an inverted closed range [L, R] with L > R.
type RangeError struct {
	L, R int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("inverted range [%d, %d]", e.L, e.R)
}

func (e RangeError) Is(target error) bool { return target == ErrInvalidConfig }

// ConfigError describes a construction parameter or mode that can't be used.
// Want states the accepted values.
type ConfigError struct {
	Param string
	Value any
	Want  string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: want %s", e.Param, e.Value, e.Want)
}

func (e ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// CheckIndex returns an IndexError unless 0 <= i < n.
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return IndexError{i, n}
	}
	return nil
}

// CheckRange validates the closed range [l, r] against a length n.
func CheckRange(l, r, n int) error {
	if l > r {
		return RangeError{l, r}
	}
	if err := CheckIndex(l, n); err != nil {
		return err
	}
	return CheckIndex(r, n)
}
