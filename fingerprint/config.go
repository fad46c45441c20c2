package fingerprint

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every config validation failure.
var ErrInvalidConfig = errors.New("invalid fingerprint config")

// Config controls all tunable parameters in the spectrogram, peak
// detection, and fingerprint matching pipeline.
type Config struct {
	SampleRate       int     `yaml:"sample_rate"`       // mono PCM sample rate the core expects
	NFFT             int     `yaml:"n_fft"`             // STFT window size in samples (power of 2)
	HopLength        int     `yaml:"hop_length"`        // samples between successive STFT frames
	PeakThreshold    float64 `yaml:"peak_threshold"`    // dB floor a spectrogram cell must reach to be a peak
	PeakNeighborhood int     `yaml:"peak_neighborhood"` // square radius a peak must dominate
	FanValueFrames   int     `yaml:"fan_value_frames"`  // forward pairing range from each anchor, in frames
	MinCount         int     `yaml:"min_count"`         // aligned hash votes required to call a match
}

// DefaultConfig returns the parameters the locator ships with: 16 kHz
// mono input with high enough time resolution to place a clip within a
// frame, and a vote threshold tuned against false positives on long
// uncorrelated sources.
func DefaultConfig() Config {
	return Config{
		SampleRate:       16000,
		NFFT:             2048, // ~128ms frames at 16 kHz
		HopLength:        512,  // 75% overlap, 32ms time resolution
		PeakThreshold:    -30.0,
		PeakNeighborhood: 3,
		FanValueFrames:   5,
		MinCount:         8,
	}
}

// Validate rejects tunables the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	case c.NFFT <= 0 || c.NFFT&(c.NFFT-1) != 0:
		return fmt.Errorf("%w: n_fft must be a positive power of 2, got %d", ErrInvalidConfig, c.NFFT)
	case c.HopLength <= 0:
		return fmt.Errorf("%w: hop_length must be positive, got %d", ErrInvalidConfig, c.HopLength)
	case c.PeakNeighborhood < 0:
		return fmt.Errorf("%w: peak_neighborhood must be non-negative, got %d", ErrInvalidConfig, c.PeakNeighborhood)
	case c.FanValueFrames <= 0:
		return fmt.Errorf("%w: fan_value_frames must be positive, got %d", ErrInvalidConfig, c.FanValueFrames)
	case c.MinCount <= 0:
		return fmt.Errorf("%w: min_count must be positive, got %d", ErrInvalidConfig, c.MinCount)
	}
	return nil
}
