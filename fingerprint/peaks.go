package fingerprint

// Peak is a spectrogram cell that is a local maximum over a square
// neighborhood and above the dB threshold.
type Peak struct {
	Freq int     // frequency bin index
	Time int     // frame index
	Val  float64 // magnitude in dB
}

// ExtractPeaks returns every cell that reaches the configured dB
// threshold and is not exceeded anywhere in its clipped square
// neighborhood. Cells that tie the neighborhood maximum all qualify,
// so a flat plateau emits one peak per cell; the matcher's histogram
// voting absorbs the extra hash density. Peaks are emitted frame by
// frame, ascending frequency within a frame.
func ExtractPeaks(spectrogram [][]float64, cfg Config) []Peak {
	numFrames := len(spectrogram)
	if numFrames == 0 {
		return nil
	}
	numBins := len(spectrogram[0])
	n := cfg.PeakNeighborhood

	var peaks []Peak
	for t := 0; t < numFrames; t++ {
		for f := 0; f < numBins; f++ {
			val := spectrogram[t][f]
			if val < cfg.PeakThreshold {
				continue
			}

			tMin, tMax := t-n, t+n
			if tMin < 0 {
				tMin = 0
			}
			if tMax >= numFrames {
				tMax = numFrames - 1
			}
			fMin, fMax := f-n, f+n
			if fMin < 0 {
				fMin = 0
			}
			if fMax >= numBins {
				fMax = numBins - 1
			}

			localMax := val
			for tt := tMin; tt <= tMax; tt++ {
				for ff := fMin; ff <= fMax; ff++ {
					if spectrogram[tt][ff] > localMax {
						localMax = spectrogram[tt][ff]
					}
				}
			}

			if val >= localMax {
				peaks = append(peaks, Peak{Freq: f, Time: t, Val: val})
			}
		}
	}

	return peaks
}
