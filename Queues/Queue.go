package Queues

// Queue is a FIFO container.
type Queue[T any] interface {
	Push(item T)
	Pop() (T, error)
	Peek() (T, error)
	Empty() bool
	Size() int
	Clear()
}

var (
	_ Queue[int] = (*Deque[int])(nil)
)
