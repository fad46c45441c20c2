package fingerprint

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// melody synthesizes tonal audio: half-second notes with two harmonics,
// frequencies drawn from a seeded ladder. Sustained tones give the
// pipeline the stable spectral peaks real recordings have, and the
// seed-dependent detune keeps melodies from different seeds on
// disjoint frequency bins.
func melody(seed int64, seconds float64, sampleRate int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	detune := 3.7 * float64(seed%17)
	samples := make([]float64, int(seconds*float64(sampleRate)))

	noteLen := sampleRate / 2
	freq := 0.0
	for i := range samples {
		if i%noteLen == 0 {
			freq = 300 + detune + 100*float64(rng.Intn(20)) // up to ~2.2 kHz
		}
		phase := 2 * math.Pi * float64(i) / float64(sampleRate)
		samples[i] = 0.5*math.Sin(phase*freq) +
			0.25*math.Sin(phase*2*freq) +
			0.15*math.Sin(phase*3*freq)
	}
	return samples
}

func TestNewMatcher_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FanValueFrames = 0

	_, err := NewMatcher(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewMatcher_RejectsNonPowerOfTwoFFT(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NFFT = 1000

	_, err := NewMatcher(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIdentify_SelfMatch(t *testing.T) {
	cfg := DefaultConfig()
	matcher, err := NewMatcher(cfg)
	require.NoError(t, err)

	clip := melody(1, 2.0, cfg.SampleRate)
	ref := matcher.BuildReference(clip)
	require.NotEmpty(t, ref)

	res := matcher.Compare(ref, clip)

	assert.True(t, res.IsMatch)
	assert.Equal(t, 0, res.BestOffset)
	// every forward pair votes for the zero offset exactly once
	assert.Equal(t, ref.NumEntries(), res.BestCount)
}

func TestIdentify_UncorrelatedStreams(t *testing.T) {
	cfg := DefaultConfig()
	matcher, err := NewMatcher(cfg)
	require.NoError(t, err)

	res := matcher.Identify(melody(1, 2.0, cfg.SampleRate), melody(99, 2.0, cfg.SampleRate))

	assert.False(t, res.IsMatch)
	assert.Less(t, res.BestCount, cfg.MinCount)
}

func TestCompare_TranslationShiftsHistogramOffset(t *testing.T) {
	cfg := DefaultConfig()
	matcher, err := NewMatcher(cfg)
	require.NoError(t, err)

	clip := melody(7, 2.0, cfg.SampleRate)
	shiftFrames := 5
	padded := append(make([]float64, shiftFrames*cfg.HopLength), clip...)

	ref := matcher.BuildReference(padded)
	res := matcher.Compare(ref, clip)

	require.True(t, res.IsMatch)
	// reference anchors sit shiftFrames later than the sample's
	assert.InDelta(t, shiftFrames, res.BestOffset, 1)
}

func TestIdentify_EmptyInputs(t *testing.T) {
	cfg := DefaultConfig()
	matcher, err := NewMatcher(cfg)
	require.NoError(t, err)

	assert.Equal(t, MatchResult{}, matcher.Identify(nil, nil))
	assert.Equal(t, MatchResult{}, matcher.Identify(melody(1, 1.0, cfg.SampleRate), nil))
	assert.Equal(t, MatchResult{}, matcher.Identify(nil, melody(1, 1.0, cfg.SampleRate)))
}

func TestIdentify_SilenceNeverMatches(t *testing.T) {
	cfg := DefaultConfig()
	matcher, err := NewMatcher(cfg)
	require.NoError(t, err)

	silence := make([]float64, 5*cfg.SampleRate)

	assert.Empty(t, matcher.BuildReference(silence))
	assert.Equal(t, MatchResult{}, matcher.Identify(silence, silence))
}
