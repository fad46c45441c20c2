package fingerprint

import "sort"

// HashKey identifies an anchor/target peak pair: the two frequency
// bins and their time gap in frames.
type HashKey struct {
	FreqA int
	FreqB int
	DT    int
}

// Reference is the fingerprint of the excerpt being searched for: a
// multimap from hash key to every anchor time the key occurs at, in
// anchor order, duplicates retained. It is built once per search
// session and never mutated afterwards.
type Reference map[HashKey][]int

// sortPeaksByTime orders peaks by ascending frame, ties broken by
// ascending frequency bin, so pair generation is deterministic.
func sortPeaksByTime(peaks []Peak) []Peak {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Time != sorted[j].Time {
			return sorted[i].Time < sorted[j].Time
		}
		return sorted[i].Freq < sorted[j].Freq
	})
	return sorted
}

// BuildFingerprint pairs each peak with the peaks that follow it
// within the fan-out range and records the anchor time under the
// pair's hash key. Same-frame pairs (dt == 0) are skipped so a hash
// never pairs a peak with itself or with a reversed copy of another
// pair.
func BuildFingerprint(peaks []Peak, cfg Config) Reference {
	sorted := sortPeaksByTime(peaks)
	ref := make(Reference)

	forwardPairs(sorted, cfg.FanValueFrames, func(key HashKey, anchorTime int) {
		ref[key] = append(ref[key], anchorTime)
	})

	return ref
}

// forwardPairs runs the shared anchor/target traversal: for each
// anchor peak, every later peak within fan frames contributes one
// (key, anchorTime) pair. Peaks must already be sorted by time.
func forwardPairs(sorted []Peak, fan int, emit func(key HashKey, anchorTime int)) {
	for i, anchor := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			dt := sorted[j].Time - anchor.Time
			if dt > fan {
				break
			}
			if dt <= 0 {
				continue
			}
			emit(HashKey{FreqA: anchor.Freq, FreqB: sorted[j].Freq, DT: dt}, anchor.Time)
		}
	}
}

// NumEntries reports the total number of stored anchor times across
// all keys.
func (r Reference) NumEntries() int {
	n := 0
	for _, offsets := range r {
		n += len(offsets)
	}
	return n
}
