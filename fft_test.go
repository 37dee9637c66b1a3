package audio

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ktye/fft"
)

func dft(x []complex128) []complex128 {
	n := len(x)
	y := make([]complex128, n)
	for k := range y {
		for j, v := range x {
			y[k] += v * cmplx.Rect(1, -2*math.Pi*float64(j*k)/float64(n))
		}
	}
	return y
}

func randComplex(r *rand.Rand, n int) []complex128 {
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(2*r.Float64()-1, 2*r.Float64()-1)
	}
	return x
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestFFTMatchesDFT(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n <= 256; n *= 2 {
		x := randComplex(r, n)
		got := Transform(x)
		want := dft(x)
		for i := range want {
			if cmplx.Abs(got[i]-want[i]) > 1e-9*float64(n) {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, i, got[i], want[i])
			}
		}
	}
}

func TestFFTMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for n := 8; n <= 4096; n *= 2 {
		ref, err := fft.New(n)
		if err != nil {
			t.Fatal(err)
		}
		x := make([]complex128, n)
		for i := range x {
			x[i] = complex(2*r.Float64()-1, 0)
		}
		// compare shapes only; the reference may scale its output
		want := normalize(magnitudes(ref.Transform(append([]complex128(nil), x...))))
		got := normalize(magnitudes(NewFFT(n).Transform(x)))
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("n=%d: magnitudes differ from reference (-want +got):\n%s", n, diff)
		}
	}
}

func magnitudes(x []complex128) []float64 {
	m := make([]float64, len(x))
	for i, v := range x {
		m[i] = cmplx.Abs(v)
	}
	return m
}

func normalize(m []float64) []float64 {
	var sum float64
	for _, v := range m {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	for i := range m {
		m[i] /= norm
	}
	return m
}

func TestFFTSinePeak(t *testing.T) {
	const (
		n          = 1024
		sampleRate = 44100.0
		k          = 10
	)
	freq := k * sampleRate / n
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(2*math.Pi*freq*float64(i)/sampleRate), 0)
	}
	m := magnitudes(Transform(x))[:n/2]
	peak := 0
	for i := range m {
		if m[i] > m[peak] {
			peak = i
		}
	}
	if peak != k {
		t.Fatalf("peak at bin %d, want %d", peak, k)
	}
	if math.Abs(m[k]-n/2) > 1e-6 {
		t.Errorf("peak magnitude %v, want %v", m[k], n/2)
	}
	for i := range m {
		if i != k && m[i] > 1e-6 {
			t.Errorf("bin %d: magnitude %v, want ~0", i, m[i])
		}
	}
}

func TestFFTPadding(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	x := randComplex(r, 500)
	got := Transform(x)
	if len(got) != 512 {
		t.Fatalf("len = %d, want 512", len(got))
	}
	padded := append(append([]complex128(nil), x...), make([]complex128, 12)...)
	if diff := cmp.Diff(Transform(padded), got, approx); diff != "" {
		t.Errorf("differs from explicitly padded input (-want +got):\n%s", diff)
	}
}

func TestFFTEmpty(t *testing.T) {
	if y := Transform(nil); len(y) != 0 {
		t.Errorf("len = %d, want 0", len(y))
	}
	if y := NewFFT(8).TransformReal(nil); len(y) != 0 {
		t.Errorf("len = %d, want 0", len(y))
	}
}

func TestFFTReal(t *testing.T) {
	x := []float32{1, -.5, .25, 0, .75}
	c := make([]complex128, len(x))
	for i, v := range x {
		c[i] = complex(float64(v), 0)
	}
	want := Transform(c)
	got := NewFFT(len(x)).TransformReal(x)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFFTNoAlloc(t *testing.T) {
	f := NewFFT(1024)
	x := make([]float32, 1024)
	if n := testing.AllocsPerRun(10, func() { f.TransformReal(x) }); n != 0 {
		t.Errorf("%v allocations per transform", n)
	}
}

func TestNextPow2(t *testing.T) {
	for n, want := range map[int]int{-3: 1, 0: 1, 1: 1, 2: 2, 3: 4, 500: 512, 512: 512, 513: 1024} {
		if got := NextPow2(n); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", n, got, want)
		}
	}
}

func BenchmarkFFT1024(b *testing.B) {
	f := NewFFT(1024)
	x := make([]float32, 1024)
	for i := 0; i < b.N; i++ {
		f.TransformReal(x)
	}
}
