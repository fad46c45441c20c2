package media

// SegmentSource exposes the files written by SplitSegments as the
// chunk sequence the search harness consumes. It decodes lazily, one
// segment per call, so only a single chunk of PCM is resident at a
// time.
type SegmentSource struct {
	Prefix     string
	Count      int
	SampleRate int
}

// NumChunks reports how many segment files the source covers.
func (s *SegmentSource) NumChunks() int {
	return s.Count
}

// Chunk decodes segment k to mono PCM at the source sample rate.
func (s *SegmentSource) Chunk(k int) ([]float64, error) {
	return DecodeSamples(SegmentPath(s.Prefix, k), s.SampleRate)
}
