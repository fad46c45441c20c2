package fingerprint

// MatchResult is the matcher's verdict on one window of the source.
// BestCount is the largest number of hash pairs that agree on a single
// frame offset between reference and sample; it doubles as a
// confidence score.
type MatchResult struct {
	IsMatch   bool
	BestCount int
	// BestOffset is the winning frame offset (reference anchor minus
	// sample anchor). The search harness re-localizes with
	// cross-correlation instead of consuming it, but it is exposed for
	// diagnostics. Ties resolve to the smallest offset.
	BestOffset int
}

// Matcher compares sample audio against a prebuilt excerpt
// fingerprint. Construction validates the config; a zero-value
// Matcher is not usable.
type Matcher struct {
	cfg Config
}

// NewMatcher returns a Matcher for the given tunables.
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{cfg: cfg}, nil
}

// Config returns the tunables the matcher was built with.
func (m *Matcher) Config() Config {
	return m.cfg
}

// BuildReference runs the full pipeline on the excerpt audio and
// returns its fingerprint. The result is cached by the caller and
// reused across every window of the source.
func (m *Matcher) BuildReference(sample []float64) Reference {
	spectrogram := Spectrogram(sample, m.cfg)
	peaks := ExtractPeaks(spectrogram, m.cfg)
	return BuildFingerprint(peaks, m.cfg)
}

// Compare fingerprints the sample window on the fly and tallies, for
// every hash pair the window shares with the reference, the frame
// offset between the reference anchor and the sample anchor. A real
// co-occurrence piles its votes onto a single offset bin; chance
// collisions scatter. Degenerate inputs (no peaks, no shared hashes)
// yield a clean no-match, never an error.
func (m *Matcher) Compare(ref Reference, sample []float64) MatchResult {
	spectrogram := Spectrogram(sample, m.cfg)
	peaks := ExtractPeaks(spectrogram, m.cfg)

	histogram := make(map[int]int)
	forwardPairs(sortPeaksByTime(peaks), m.cfg.FanValueFrames, func(key HashKey, anchorTime int) {
		for _, refTime := range ref[key] {
			histogram[refTime-anchorTime]++
		}
	})

	if len(histogram) == 0 {
		return MatchResult{IsMatch: false, BestCount: 0}
	}

	// smallest offset wins ties so repeated runs agree
	bestOffset, bestCount := 0, -1
	for offset, count := range histogram {
		if count > bestCount || (count == bestCount && offset < bestOffset) {
			bestOffset, bestCount = offset, count
		}
	}

	return MatchResult{
		IsMatch:    bestCount >= m.cfg.MinCount,
		BestCount:  bestCount,
		BestOffset: bestOffset,
	}
}

// Identify builds the reference from refSample and compares sample
// against it in one call. Session-long searches should call
// BuildReference once and Compare per window instead.
func (m *Matcher) Identify(refSample, sample []float64) MatchResult {
	return m.Compare(m.BuildReference(refSample), sample)
}
