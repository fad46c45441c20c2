package search

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FindOffset locates the start of shortClip inside longWindow and
// returns it in seconds, rounded to 0.01 s. Only the first headSeconds
// of the clip are correlated: that is enough to pin down where the
// clip begins, and it keeps the transform small when the clip is long.
// If the clip is shorter than the head, the whole clip is used.
//
// The correlation is linear (both inputs are zero-padded past
// len(longWindow)+len(head)-1 before the FFT) and evaluated in valid
// mode: lag k scores the head against longWindow[k:k+len(head)].
func FindOffset(longWindow []float64, sampleRate int, shortClip []float64, headSeconds int) float64 {
	head := headSeconds * sampleRate
	if head > len(shortClip) {
		head = len(shortClip)
	}
	if head == 0 || len(longWindow) < head {
		return 0
	}

	size := nextPow2(len(longWindow) + head - 1)
	fft := fourier.NewFFT(size)

	padded := make([]float64, size)
	copy(padded, longWindow)
	windowCoeffs := fft.Coefficients(nil, padded)

	for i := range padded {
		padded[i] = 0
	}
	copy(padded, shortClip[:head])
	clipCoeffs := fft.Coefficients(nil, padded)

	for i := range windowCoeffs {
		windowCoeffs[i] *= cmplx.Conj(clipCoeffs[i])
	}
	correlation := fft.Sequence(nil, windowCoeffs)

	// valid lags only: the head must fit entirely inside the window
	bestLag, bestVal := 0, math.Inf(-1)
	for k := 0; k <= len(longWindow)-head; k++ {
		if correlation[k] > bestVal {
			bestLag, bestVal = k, correlation[k]
		}
	}

	return math.Round(float64(bestLag)/float64(sampleRate)*100) / 100
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
