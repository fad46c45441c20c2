package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/JoeYang1412/HighlightLocator/utils"
	"github.com/go-audio/wav"
)

// DecodeSamples decodes any audio file to mono float PCM in [-1, 1] at
// the requested sample rate. ffmpeg handles container and rate
// conversion into a temporary 16-bit WAV, which is then read back and
// normalized. The temporary file is removed before returning.
func DecodeSamples(inputPath string, sampleRate int) ([]float64, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("input file does not exist: %v", err)
	}
	if err := utils.CreateFolder(TmpDir); err != nil {
		return nil, err
	}

	tmpFile := filepath.Join(TmpDir, "decode_"+filepath.Base(inputPath)+".wav")
	defer os.Remove(tmpFile)

	cmd := exec.Command(
		"ffmpeg", "-y",
		"-i", inputPath,
		"-c", "pcm_s16le",
		"-ar", fmt.Sprint(sampleRate),
		"-ac", "1",
		tmpFile,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %v, output: %s", err, output)
	}

	return readWavSamples(tmpFile)
}

// readWavSamples reads a 16-bit PCM WAV file and normalizes its
// samples to float64 in [-1, 1].
func readWavSamples(wavPath string) ([]float64, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %v", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %q", wavPath)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav data: %v", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty wav file: %q", wavPath)
	}

	scale := float64(int(1) << (decoder.BitDepth - 1))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return samples, nil
}
