package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSampleRate = 16000

// noise returns seeded uniform noise in [-0.5, 0.5]. Noise has a sharp
// autocorrelation, which makes correlation offsets unambiguous.
func noise(seed int64, numSamples int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, numSamples)
	for i := range samples {
		samples[i] = rng.Float64() - 0.5
	}
	return samples
}

func TestFindOffset_LocatesClipStart(t *testing.T) {
	long := noise(1, 20*testSampleRate)
	clip := long[3*testSampleRate : 8*testSampleRate]

	got := FindOffset(long, testSampleRate, clip, 10)

	assert.InDelta(t, 3.00, got, 1e-9)
}

func TestFindOffset_UsesOnlyClipHead(t *testing.T) {
	long := noise(2, 20*testSampleRate)
	clip := long[2*testSampleRate : 14*testSampleRate] // 12s, longer than the head

	got := FindOffset(long, testSampleRate, clip, 10)

	assert.InDelta(t, 2.00, got, 1e-9)
}

func TestFindOffset_RoundsToCentiseconds(t *testing.T) {
	long := noise(3, 10*testSampleRate)
	start := 50016 // 3.126 s
	clip := long[start : start+2*testSampleRate]

	got := FindOffset(long, testSampleRate, clip, 10)

	assert.InDelta(t, 3.13, got, 1e-9)
}

func TestFindOffset_ZeroOffset(t *testing.T) {
	long := noise(4, 5*testSampleRate)

	got := FindOffset(long, testSampleRate, long[:2*testSampleRate], 10)

	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestFindOffset_DegenerateInputs(t *testing.T) {
	long := noise(5, 5*testSampleRate)

	// window shorter than the correlation head
	assert.Zero(t, FindOffset(long[:1000], testSampleRate, noise(6, 20*testSampleRate), 10))
	// nothing to correlate against
	assert.Zero(t, FindOffset(long, testSampleRate, nil, 10))
	assert.Zero(t, FindOffset(nil, testSampleRate, long[:100], 10))
}
