package Queues

import (
	Go_Ordered "github.com/g-m-twostay/go-ordered"
)

// Stack is a LIFO container backed by a slice. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty Stack with room for initCap items.
func NewStack[T any](initCap int) *Stack[T] {
	return &Stack[T]{make([]T, 0, max(initCap, 0))}
}

func (u *Stack[T]) Push(item T) {
	u.items = append(u.items, item)
}

// Pop removes and returns the top item.
func (u *Stack[T]) Pop() (item T, e error) {
	if len(u.items) == 0 {
		return item, Go_Ordered.EmptyError{Op: "Pop"}
	}
	item = u.items[len(u.items)-1]
	u.items[len(u.items)-1] = *new(T)
	u.items = u.items[:len(u.items)-1]
	return item, nil
}

// Top returns the top item without removing it.
func (u *Stack[T]) Top() (item T, e error) {
	if len(u.items) == 0 {
		return item, Go_Ordered.EmptyError{Op: "Top"}
	}
	return u.items[len(u.items)-1], nil
}

func (u *Stack[T]) Empty() bool {
	return len(u.items) == 0
}

func (u *Stack[T]) Size() int {
	return len(u.items)
}

// Clear empties the Stack, keeping its capacity.
func (u *Stack[T]) Clear() {
	clear(u.items)
	u.items = u.items[:0]
}
