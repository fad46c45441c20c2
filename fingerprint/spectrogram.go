package fingerprint

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// magnitudes below this are treated as silence before the dB conversion
	magnitudeFloor = 1e-10
	// decibel floor the spectrogram is clamped to
	dbFloor = -80.0
)

// Spectrogram computes the log-magnitude STFT of a mono sample. Each
// row holds one frame of n_fft/2+1 frequency bins, in decibels relative
// to the loudest cell, so the matrix maximum is exactly 0 dB and every
// entry is clamped at -80 dB. Frames are emitted only where a full
// window fits; input shorter than the window yields zero frames.
func Spectrogram(sample []float64, cfg Config) [][]float64 {
	window := make([]float64, cfg.NFFT)
	for i := range window {
		// periodic hann
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(cfg.NFFT))
	}

	fft := fourier.NewFFT(cfg.NFFT)
	frame := make([]float64, cfg.NFFT)

	numFrames := 0
	if len(sample) >= cfg.NFFT {
		numFrames = (len(sample)-cfg.NFFT)/cfg.HopLength + 1
	}

	spectrogram := make([][]float64, 0, numFrames)
	maxMagnitude := 0.0

	for start := 0; start+cfg.NFFT <= len(sample); start += cfg.HopLength {
		copy(frame, sample[start:start+cfg.NFFT])
		for j := range window {
			frame[j] *= window[j]
		}

		coeffs := fft.Coefficients(nil, frame)

		magnitudes := make([]float64, len(coeffs))
		for j, c := range coeffs {
			m := cmplx.Abs(c)
			magnitudes[j] = m
			if m > maxMagnitude {
				maxMagnitude = m
			}
		}

		spectrogram = append(spectrogram, magnitudes)
	}

	toDecibels(spectrogram, maxMagnitude)
	return spectrogram
}

// toDecibels converts magnitudes in place to dB relative to ref. A
// silent matrix (ref below the magnitude floor) collapses to the dB
// floor so no cell survives peak thresholding.
func toDecibels(spectrogram [][]float64, ref float64) {
	if ref < magnitudeFloor {
		for _, frame := range spectrogram {
			for j := range frame {
				frame[j] = dbFloor
			}
		}
		return
	}

	for _, frame := range spectrogram {
		for j, m := range frame {
			if m < magnitudeFloor {
				m = magnitudeFloor
			}
			db := 20 * math.Log10(m/ref)
			if db < dbFloor {
				db = dbFloor
			}
			frame[j] = db
		}
	}
}
