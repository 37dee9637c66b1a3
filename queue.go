package audio

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Queue is a bounded lock-free FIFO for exactly one producer goroutine and
// one consumer goroutine.  Neither end ever blocks or allocates.
type Queue[T any] struct {
	buf []T

	_    cpu.CacheLinePad
	head atomic.Uint64 // next slot to pop, written by the consumer
	_    cpu.CacheLinePad
	tail atomic.Uint64 // next slot to push, written by the producer
	_    cpu.CacheLinePad
}

func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("audio.NewQueue: invalid capacity %d", capacity))
	}
	return &Queue[T]{buf: make([]T, capacity)}
}

func (q *Queue[T]) Cap() int { return len(q.buf) }

// Len is exact when called from either end; from elsewhere it is a snapshot.
func (q *Queue[T]) Len() int { return int(q.tail.Load() - q.head.Load()) }

// Free is the number of pushes that will succeed before the next pop.
func (q *Queue[T]) Free() int { return q.Cap() - q.Len() }

// TryPush appends v and reports true, or reports false if the queue is full.
// Producer only.
func (q *Queue[T]) TryPush(v T) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}
	q.buf[tail%uint64(len(q.buf))] = v
	q.tail.Store(tail + 1)
	return true
}

// TryPop removes the oldest value, or reports false if the queue is empty.
// Consumer only.
func (q *Queue[T]) TryPop() (T, bool) {
	var zero T
	head := q.head.Load()
	if head == q.tail.Load() {
		return zero, false
	}
	i := head % uint64(len(q.buf))
	v := q.buf[i]
	q.buf[i] = zero
	q.head.Store(head + 1)
	return v, true
}

// Drain pops into a until a is full or the queue is empty and returns the
// number of values popped.  Consumer only.
func (q *Queue[T]) Drain(a []T) int {
	for i := range a {
		v, ok := q.TryPop()
		if !ok {
			return i
		}
		a[i] = v
	}
	return len(a)
}

// Fill pops one sample per slot of out, writing silence where the queue runs
// dry, and returns the number of silent slots.  It is the pull function for
// the real-time output callback.
func Fill(q *Queue[float32], out []float32) (underflow int) {
	for i := range out {
		x, ok := q.TryPop()
		if !ok {
			underflow++
		}
		out[i] = x
	}
	return
}

// FillInterleaved is Fill for an interleaved buffer of the given channel
// count: each mono sample is copied to every channel of its frame.
func FillInterleaved(q *Queue[float32], out []float32, channels int) (underflow int) {
	if channels <= 1 {
		return Fill(q, out)
	}
	for i := 0; i+channels <= len(out); i += channels {
		x, ok := q.TryPop()
		if !ok {
			underflow++
		}
		for c := 0; c < channels; c++ {
			out[i+c] = x
		}
	}
	for i := len(out) - len(out)%channels; i < len(out); i++ {
		out[i] = 0
	}
	return
}
