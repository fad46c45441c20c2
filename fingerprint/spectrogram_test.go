package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freqHz float64, seconds float64, sampleRate int) []float64 {
	samples := make([]float64, int(seconds*float64(sampleRate)))
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sampleRate))
	}
	return samples
}

func TestSpectrogram_Shape(t *testing.T) {
	cfg := DefaultConfig()
	sample := sine(440, 1.0, cfg.SampleRate)

	spec := Spectrogram(sample, cfg)

	wantFrames := (len(sample)-cfg.NFFT)/cfg.HopLength + 1
	require.Len(t, spec, wantFrames)
	for _, frame := range spec {
		assert.Len(t, frame, cfg.NFFT/2+1)
	}
}

func TestSpectrogram_MaxIsZeroDecibels(t *testing.T) {
	cfg := DefaultConfig()
	spec := Spectrogram(sine(440, 0.5, cfg.SampleRate), cfg)

	maxVal := math.Inf(-1)
	for _, frame := range spec {
		for _, v := range frame {
			require.False(t, math.IsNaN(v))
			assert.LessOrEqual(t, v, 0.0)
			assert.GreaterOrEqual(t, v, -80.0)
			if v > maxVal {
				maxVal = v
			}
		}
	}
	assert.Equal(t, 0.0, maxVal)
}

func TestSpectrogram_ToneLandsInExpectedBin(t *testing.T) {
	cfg := DefaultConfig()
	freq := 1000.0
	spec := Spectrogram(sine(freq, 0.5, cfg.SampleRate), cfg)

	// the 0 dB cell must sit on the tone's bin
	wantBin := int(math.Round(freq * float64(cfg.NFFT) / float64(cfg.SampleRate)))
	for _, frame := range spec {
		for f, v := range frame {
			if v == 0.0 {
				assert.InDelta(t, wantBin, f, 1)
			}
		}
	}
}

func TestSpectrogram_InputShorterThanWindow(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, Spectrogram(make([]float64, cfg.NFFT-1), cfg))
	assert.Empty(t, Spectrogram(nil, cfg))
}

func TestSpectrogram_SilenceClampsToFloor(t *testing.T) {
	cfg := DefaultConfig()
	spec := Spectrogram(make([]float64, cfg.SampleRate), cfg)

	require.NotEmpty(t, spec)
	for _, frame := range spec {
		for _, v := range frame {
			assert.Equal(t, -80.0, v)
		}
	}
}
