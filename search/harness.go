package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/JoeYang1412/HighlightLocator/fingerprint"
	"github.com/JoeYang1412/HighlightLocator/utils"
	"github.com/mdobak/go-xerrors"
)

// ErrInvalidInput is wrapped by input validation failures on the
// excerpt audio.
var ErrInvalidInput = errors.New("invalid input audio")

// ChunkSource yields a long recording as contiguous pre-split chunks,
// each at most the configured split duration long. Chunk k's local
// time zero corresponds to global time k*splitDuration.
type ChunkSource interface {
	// NumChunks reports how many chunks make up the source.
	NumChunks() int
	// Chunk decodes chunk k as mono PCM at the harness sample rate.
	Chunk(k int) ([]float64, error)
}

// Config holds the harness tunables that are independent of the
// fingerprint pipeline.
type Config struct {
	SplitDuration int `yaml:"split_duration"` // seconds per source chunk
	HeadSeconds   int `yaml:"head_seconds"`   // clip head length correlated during refinement
}

// DefaultConfig returns the harness defaults: hour-long chunks and a
// ten second correlation head.
func DefaultConfig() Config {
	return Config{
		SplitDuration: 3600,
		HeadSeconds:   10,
	}
}

// Result is the outcome of a search. Found false means the excerpt was
// not located anywhere in the source; that is a normal outcome, not an
// error.
type Result struct {
	Found         bool
	OffsetSeconds float64 // source-relative offset of the excerpt start
	Timecode      string  // OffsetSeconds as HH:MM:SS
	BestCount     int     // matcher votes behind the decision
	Chunk         int     // chunk the match was found in
}

// Harness drives the sliding-window comparison of an excerpt against a
// long, pre-chunked source.
type Harness struct {
	matcher *fingerprint.Matcher
	cfg     Config
	log     *slog.Logger

	// OnWindow, when set, is invoked before each window comparison with
	// the chunk index and the chunk-local window bounds in seconds.
	OnWindow func(chunk int, segStart, segEnd float64)
}

// NewHarness validates both config blocks and returns a ready harness.
func NewHarness(fpCfg fingerprint.Config, cfg Config) (*Harness, error) {
	matcher, err := fingerprint.NewMatcher(fpCfg)
	if err != nil {
		return nil, err
	}
	if cfg.SplitDuration <= 0 {
		return nil, fmt.Errorf("%w: split_duration must be positive, got %d", fingerprint.ErrInvalidConfig, cfg.SplitDuration)
	}
	if cfg.HeadSeconds <= 0 {
		return nil, fmt.Errorf("%w: head_seconds must be positive, got %d", fingerprint.ErrInvalidConfig, cfg.HeadSeconds)
	}
	return &Harness{matcher: matcher, cfg: cfg, log: utils.Logger()}, nil
}

// windowGeometry derives the sliding-window shape from the excerpt
// length. The overlap is twice the excerpt so a clip spanning any
// window boundary still falls wholly inside at least one window. Short
// clips get a larger segment multiplier: the sparser the clip's hash
// set, the more the window must dominate it for the vote histogram to
// stay decisive.
func windowGeometry(clipSeconds float64) (overlap, segmentLength float64) {
	overlap = 2 * clipSeconds
	if clipSeconds > 60 {
		segmentLength = 6 * clipSeconds
	} else {
		segmentLength = 15 * clipSeconds
	}
	return overlap, segmentLength
}

// Locate scans the source chunk by chunk, left to right, and returns
// the global offset of the first window that matches the excerpt
// fingerprint, with the position inside that window refined by
// cross-correlation. Chunks that
// fail to decode are skipped with a diagnostic. The excerpt
// fingerprint is built once and reused for every window.
func (h *Harness) Locate(clip []float64, source ChunkSource) (Result, error) {
	sr := h.matcher.Config().SampleRate
	if err := validateClip(clip, h.matcher.Config().NFFT); err != nil {
		return Result{}, err
	}

	ref := h.matcher.BuildReference(clip)
	clipSeconds := float64(len(clip)) / float64(sr)
	overlap, segmentLength := windowGeometry(clipSeconds)

	h.log.Info("starting search",
		slog.Float64("clip_seconds", clipSeconds),
		slog.Float64("overlap", overlap),
		slog.Float64("segment_length", segmentLength),
		slog.Int("chunks", source.NumChunks()),
		slog.Int("reference_entries", ref.NumEntries()))

	for k := 0; k < source.NumChunks(); k++ {
		chunk, err := source.Chunk(k)
		if err != nil {
			h.log.Warn("chunk decode failed, skipping",
				slog.Int("chunk", k), slog.Any("error", xerrors.New(err)))
			continue
		}
		chunkSeconds := float64(len(chunk)) / float64(sr)

		for currentStart := 0.0; currentStart < chunkSeconds; currentStart += segmentLength {
			segStart := math.Max(currentStart-overlap, 0)
			segEnd := math.Min(currentStart+segmentLength+overlap, chunkSeconds)
			if segStart >= segEnd {
				break
			}
			if h.OnWindow != nil {
				h.OnWindow(k, segStart, segEnd)
			}

			window := chunk[int(segStart*float64(sr)):int(segEnd*float64(sr))]
			res := h.matcher.Compare(ref, window)
			h.log.Debug("window compared",
				slog.Int("chunk", k),
				slog.String("from", utils.SecToTime(k*h.cfg.SplitDuration+int(segStart))),
				slog.String("to", utils.SecToTime(k*h.cfg.SplitDuration+int(segEnd))),
				slog.Bool("match", res.IsMatch),
				slog.Int("best_count", res.BestCount))

			if res.IsMatch {
				offsetInWindow := FindOffset(window, sr, clip, h.cfg.HeadSeconds)
				globalOffset := float64(k*h.cfg.SplitDuration) + segStart + offsetInWindow
				return Result{
					Found:         true,
					OffsetSeconds: globalOffset,
					Timecode:      utils.SecToTime(int(globalOffset)),
					BestCount:     res.BestCount,
					Chunk:         k,
				}, nil
			}
		}

		// release chunk memory before loading the next one
		chunk = nil
		runtime.GC()
	}

	return Result{}, nil
}

func validateClip(clip []float64, nfft int) error {
	if len(clip) == 0 {
		return fmt.Errorf("%w: excerpt is empty", ErrInvalidInput)
	}
	if len(clip) < nfft {
		return fmt.Errorf("%w: excerpt has %d samples, need at least %d", ErrInvalidInput, len(clip), nfft)
	}
	for i, s := range clip {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}
