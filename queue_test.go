package audio

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int](4)
	if q.Cap() != 4 || q.Len() != 0 || q.Free() != 4 {
		t.Fatalf("new queue: cap %d len %d free %d", q.Cap(), q.Len(), q.Free())
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("pop from empty queue succeeded")
	}

	var pushed, dropped []int
	for i := 1; i <= 6; i++ {
		if q.TryPush(i) {
			pushed = append(pushed, i)
		} else {
			dropped = append(dropped, i)
		}
	}
	if diff := cmp.Diff([]int{5, 6}, dropped); diff != "" {
		t.Errorf("dropped (-want +got):\n%s", diff)
	}

	var got []int
	for i := 0; i < 2; i++ {
		v, _ := q.TryPop()
		got = append(got, v)
	}
	q.TryPush(7)
	q.TryPush(8)
	if q.TryPush(9) {
		t.Error("push into full queue succeeded")
	}
	for {
		v, ok := q.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 7, 8}, got); diff != "" {
		t.Errorf("popped (-want +got):\n%s", diff)
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[float32](8)
	for i := 0; i < 5; i++ {
		q.TryPush(float32(i))
	}
	a := make([]float32, 3)
	if n := q.Drain(a); n != 3 {
		t.Errorf("drained %d, want 3", n)
	}
	if diff := cmp.Diff([]float32{0, 1, 2}, a); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n := q.Drain(a); n != 2 || q.Len() != 0 {
		t.Errorf("drained %d, len %d", n, q.Len())
	}
}

func TestFill(t *testing.T) {
	q := NewQueue[float32](8)
	q.TryPush(.1)
	q.TryPush(.2)
	out := []float32{9, 9, 9, 9}
	if n := Fill(q, out); n != 2 {
		t.Errorf("underflow %d, want 2", n)
	}
	if diff := cmp.Diff([]float32{.1, .2, 0, 0}, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFillInterleaved(t *testing.T) {
	q := NewQueue[float32](8)
	q.TryPush(.1)
	q.TryPush(.2)
	out := []float32{9, 9, 9, 9, 9, 9, 9}
	if n := FillInterleaved(q, out, 2); n != 1 {
		t.Errorf("underflow %d, want 1", n)
	}
	if diff := cmp.Diff([]float32{.1, .1, .2, .2, 0, 0, 0}, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestQueueConcurrent(t *testing.T) {
	const n = 200000
	q := NewQueue[uint32](64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := uint32(0); i < n; {
			if q.TryPush(i) {
				i++
			} else {
				runtime.Gosched()
			}
		}
	}()

	for want := uint32(0); want < n; {
		v, ok := q.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		if v != want {
			t.Fatalf("popped %d, want %d", v, want)
		}
		want++
	}
	<-done
}

func TestNewQueueInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewQueue[float32](0)
}

func BenchmarkQueue(b *testing.B) {
	q := NewQueue[float32](1024)
	for i := 0; i < b.N; i++ {
		q.TryPush(1)
		q.TryPop()
	}
}
