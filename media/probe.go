package media

import (
	"fmt"
	"os/exec"

	"github.com/tidwall/gjson"
)

// Metadata carries the container-level facts ffprobe reports about an
// audio file.
type Metadata struct {
	DurationSec float64
	Title       string
	Artist      string
}

// Probe runs ffprobe on the file and extracts duration and tags from
// its JSON output.
func Probe(inputPath string) (Metadata, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		inputPath,
	)

	out, err := cmd.Output()
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe failed on %q: %v", inputPath, err)
	}

	format := gjson.GetBytes(out, "format")
	if !format.Exists() {
		return Metadata{}, fmt.Errorf("ffprobe returned no format block for %q", inputPath)
	}

	return Metadata{
		DurationSec: format.Get("duration").Float(),
		Title:       format.Get("tags.title").String(),
		Artist:      format.Get("tags.artist").String(),
	}, nil
}

// Duration returns the duration of an audio file in seconds.
func Duration(inputPath string) (float64, error) {
	meta, err := Probe(inputPath)
	if err != nil {
		return 0, err
	}
	return meta.DurationSec, nil
}
