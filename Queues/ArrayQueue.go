package Queues

import (
	Go_Ordered "github.com/g-m-twostay/go-ordered"
)

// Deque is a double ended queue backed by a circular array. The zero value is
// an empty Deque ready to use.
type Deque[T any] struct {
	sz, head uint
	content  []T
}

// NewDeque returns an empty Deque with room for initCap items.
func NewDeque[T any](initCap int) *Deque[T] {
	return &Deque[T]{content: make([]T, max(initCap, 0))}
}

func (u *Deque[T]) Empty() bool {
	return u.sz == 0
}

func (u *Deque[T]) Size() int {
	return int(u.sz)
}

// slot maps a logical position to an index in content.
func (u *Deque[T]) slot(i uint) uint {
	return (u.head + i) % uint(len(u.content))
}

func (u *Deque[T]) resize(newLen uint) {
	nc := make([]T, newLen)
	if u.sz > 0 {
		if end := u.head + u.sz; end <= uint(len(u.content)) {
			copy(nc, u.content[u.head:end])
		} else {
			n := copy(nc, u.content[u.head:])
			copy(nc[n:], u.content[:u.sz-uint(n)])
		}
	}
	u.content, u.head = nc, 0
}

func (u *Deque[T]) grow() {
	if u.sz == uint(len(u.content)) {
		u.resize(max(u.sz*3/2, 4))
	}
}

// Shrink releases unused capacity.
func (u *Deque[T]) Shrink() {
	u.resize(u.sz | 1)
}

// Clear empties the Deque, keeping its capacity.
func (u *Deque[T]) Clear() {
	clear(u.content)
	u.sz, u.head = 0, 0
}

// PushBack appends item at the back.
func (u *Deque[T]) PushBack(item T) {
	u.grow()
	u.content[u.slot(u.sz)] = item
	u.sz++
}

// PushFront prepends item at the front.
func (u *Deque[T]) PushFront(item T) {
	u.grow()
	u.head = (u.head + uint(len(u.content)) - 1) % uint(len(u.content))
	u.content[u.head] = item
	u.sz++
}

// PopFront removes and returns the front item.
func (u *Deque[T]) PopFront() (item T, e error) {
	if u.Empty() {
		return item, Go_Ordered.EmptyError{Op: "PopFront"}
	}
	item = u.content[u.head]
	u.content[u.head] = *new(T)
	u.head = (u.head + 1) % uint(len(u.content))
	u.sz--
	return item, nil
}

// PopBack removes and returns the back item.
func (u *Deque[T]) PopBack() (item T, e error) {
	if u.Empty() {
		return item, Go_Ordered.EmptyError{Op: "PopBack"}
	}
	i := u.slot(u.sz - 1)
	item = u.content[i]
	u.content[i] = *new(T)
	u.sz--
	return item, nil
}

// Front returns the front item without removing it.
func (u *Deque[T]) Front() (item T, e error) {
	if u.Empty() {
		return item, Go_Ordered.EmptyError{Op: "Front"}
	}
	return u.content[u.head], nil
}

// Back returns the back item without removing it.
func (u *Deque[T]) Back() (item T, e error) {
	if u.Empty() {
		return item, Go_Ordered.EmptyError{Op: "Back"}
	}
	return u.content[u.slot(u.sz-1)], nil
}

// At returns the i-th item counted from the front.
func (u *Deque[T]) At(i int) (item T, e error) {
	if e = Go_Ordered.CheckIndex(i, int(u.sz)); e != nil {
		return
	}
	return u.content[u.slot(uint(i))], nil
}

// Push [Queue.Push]
func (u *Deque[T]) Push(item T) { u.PushBack(item) }

// Pop [Queue.Pop]
func (u *Deque[T]) Pop() (T, error) { return u.PopFront() }

// Peek [Queue.Peek]
func (u *Deque[T]) Peek() (T, error) { return u.Front() }
