// Package media wraps the external ffmpeg/ffprobe tooling: decoding
// arbitrary audio to the mono PCM stream the fingerprint core expects,
// cutting sections, and pre-splitting multi-hour recordings into
// bounded chunks.
package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/JoeYang1412/HighlightLocator/utils"
)

// TmpDir is where intermediate WAV files are written.
const TmpDir = "tmp"

// ConvertToM4A strips the video track from an MP4 and copies the audio
// stream into an M4A container without re-encoding.
func ConvertToM4A(inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file does not exist: %v", err)
	}

	outputFile := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".m4a"

	cmd := exec.Command(
		"ffmpeg", "-y",
		"-loglevel", "quiet",
		"-i", inputPath,
		"-vn",
		"-c:a", "copy",
		outputFile,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to convert to M4A: %v, output: %s", err, output)
	}

	return outputFile, nil
}

// ExtractSection cuts [startSec, startSec+durationSec) out of any
// audio file and writes it as 16-bit PCM mono WAV at the requested
// sample rate. The result is a small temporary file bounded by
// durationSec regardless of original file size.
func ExtractSection(inputPath string, startSec, durationSec float64, sampleRate int) (string, error) {
	if err := utils.CreateFolder(TmpDir); err != nil {
		return "", err
	}

	outputFile := filepath.Join(TmpDir, fmt.Sprintf("section_%.0f_%.0f.wav", startSec, durationSec))

	cmd := exec.Command(
		"ffmpeg", "-y",
		"-ss", fmt.Sprintf("%.3f", startSec),
		"-t", fmt.Sprintf("%.3f", durationSec),
		"-i", inputPath,
		"-c", "pcm_s16le",
		"-ar", fmt.Sprint(sampleRate),
		"-ac", "1",
		outputFile,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg section extraction failed: %v, output: %s", err, output)
	}

	return outputFile, nil
}

// SplitSegments splits an audio file into consecutive segments of at
// most segmentDuration seconds, stream-copied into files named
// <prefix>_000.m4a, <prefix>_001.m4a, and so on. It returns the number
// of segments written.
func SplitSegments(inputPath string, segmentDuration int, outputPrefix string) (int, error) {
	if dir := filepath.Dir(outputPrefix); dir != "." {
		if err := utils.CreateFolder(dir); err != nil {
			return 0, err
		}
	}

	cmd := exec.Command(
		"ffmpeg",
		"-loglevel", "quiet",
		"-i", inputPath,
		"-f", "segment",
		"-segment_time", fmt.Sprint(segmentDuration),
		"-c", "copy",
		outputPrefix+"_%03d.m4a",
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("ffmpeg segmentation failed: %v, output: %s", err, output)
	}

	matches, err := filepath.Glob(outputPrefix + "_*.m4a")
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("ffmpeg segmentation produced no output for %q", inputPath)
	}

	return len(matches), nil
}

// SegmentPath returns the path of segment k under the given prefix.
func SegmentPath(outputPrefix string, k int) string {
	return fmt.Sprintf("%s_%03d.m4a", outputPrefix, k)
}
