package audio

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// FFT is a recursive radix-2 Cooley-Tukey transform.  Its two scratch
// buffers are swapped at every level of the recursion and reused between
// calls, so transforming blocks of a fixed length never allocates.
type FFT struct {
	a, b []complex128
}

func NewFFT(size int) *FFT {
	n := NextPow2(size)
	return &FFT{a: make([]complex128, n), b: make([]complex128, n)}
}

// Size is the padded transform length.
func (f *FFT) Size() int { return len(f.a) }

// Transform returns the unnormalized DFT of x zero-padded to the next power
// of two.  The result aliases f's scratch and is valid until the next call.
func (f *FFT) Transform(x []complex128) []complex128 {
	if len(x) == 0 {
		return f.a[:0]
	}
	n := NextPow2(len(x))
	if n != len(f.a) {
		f.a = make([]complex128, n)
		f.b = make([]complex128, n)
	}
	copy(f.a, x)
	clear(f.a[len(x):])
	copy(f.b, f.a)
	transform(f.a, f.b, n, 1)
	return f.a
}

// TransformReal is Transform for real samples.
func (f *FFT) TransformReal(x []float32) []complex128 {
	if len(x) == 0 {
		return f.a[:0]
	}
	n := NextPow2(len(x))
	if n != len(f.a) {
		f.a = make([]complex128, n)
		f.b = make([]complex128, n)
	}
	for i, v := range x {
		f.a[i] = complex(float64(v), 0)
	}
	clear(f.a[len(x):])
	copy(f.b, f.a)
	transform(f.a, f.b, n, 1)
	return f.a
}

// Transform is a convenience for one-off transforms; it allocates.
func Transform(x []complex128) []complex128 {
	y := NewFFT(len(x)).Transform(x)
	return y[:len(y):len(y)]
}

// transform leaves in a the transform of the stride-step subsequence of b.
// a and b must hold the same data on entry.
func transform(a, b []complex128, n, step int) {
	if step >= n {
		return
	}
	transform(b, a, n, step*2)
	transform(b[step:], a[step:], n, step*2)

	left, right := a[:n/2], a[n/2:]
	for i := 0; i < n; i += step * 2 {
		t := cmplx.Rect(1, -math.Pi*float64(i)/float64(n)) * b[i+step]
		left[i/2] = b[i] + t
		right[i/2] = b[i] - t
	}
}

// NextPow2 returns the smallest power of two >= n, and 1 for n <= 1.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
