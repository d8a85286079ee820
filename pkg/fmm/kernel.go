package fmm

import "math"

// kernel evaluates the fundamental solution K(p, q) = log|p - q| used
// throughout the multipole expansion, the local expansion, and the
// near-field direct sum.
//
// The result is computed as the real logarithm of the magnitude of p-q,
// embedded in the complex plane with a zero imaginary part, not as
// cmplx.Log(p-q): the two agree in magnitude but cmplx.Log also carries
// the phase of p-q in its imaginary part, which this kernel must not
// propagate.
func kernel(p, q complex128) complex128 {
	d := p - q
	r := math.Hypot(real(d), imag(d))
	return complex(math.Log(r), 0)
}
