// Package download fetches audio from streaming hosts through the
// external yt-dlp tool.
package download

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/JoeYang1412/HighlightLocator/utils"
	"github.com/buger/jsonparser"
)

var (
	youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)
	specialCharacters = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// IsValidYouTubeURL reports whether the string looks like a YouTube
// video URL.
func IsValidYouTubeURL(url string) bool {
	return youtubeURLPattern.MatchString(url)
}

// CleanURL strips playlist parameters so yt-dlp fetches a single
// video.
func CleanURL(url string) string {
	if i := strings.Index(url, "&"); i >= 0 {
		return url[:i]
	}
	return url
}

// Info is the subset of the yt-dlp metadata dump the locator needs.
type Info struct {
	Title       string
	DurationSec int64
}

// Downloader wraps yt-dlp for one video URL. Output files are named
// after the part of the URL following its last '=' (the video ID for
// watch?v= URLs) with non-alphanumeric characters removed; a URL
// without '=' is used whole.
type Downloader struct {
	URL       string
	OutputDir string
}

// NewDownloader returns a Downloader writing into outputDir.
func NewDownloader(url, outputDir string) *Downloader {
	return &Downloader{URL: url, OutputDir: outputDir}
}

func (d *Downloader) baseName() string {
	parts := strings.Split(d.URL, "=")
	return specialCharacters.ReplaceAllString(parts[len(parts)-1], "")
}

// FetchInfo asks yt-dlp for the video metadata without downloading.
func (d *Downloader) FetchInfo() (Info, error) {
	cmd := exec.Command("yt-dlp", "-J", "--no-warnings", d.URL)
	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("yt-dlp metadata query failed: %v", err)
	}

	title, _ := jsonparser.GetString(out, "title")
	duration, err := jsonparser.GetInt(out, "duration")
	if err != nil {
		return Info{}, fmt.Errorf("yt-dlp dump has no duration field: %v", err)
	}

	return Info{Title: title, DurationSec: duration}, nil
}

// DownloadM4A downloads the full audio track as M4A and returns the
// path of the downloaded file.
func (d *Downloader) DownloadM4A() (string, error) {
	if err := utils.CreateFolder(d.OutputDir); err != nil {
		return "", err
	}

	outputPath := filepath.Join(d.OutputDir, d.baseName()+".m4a")
	cmd := exec.Command(
		"yt-dlp",
		"-f", "bestaudio[ext=m4a]/best[ext=m4a]",
		"--quiet", "--no-warnings",
		"-o", outputPath,
		d.URL,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %v, output: %s", err, output)
	}

	return outputPath, nil
}

// DownloadSectionM4A downloads only [startSec, endSec) of the audio
// track and returns the path of the downloaded file.
func (d *Downloader) DownloadSectionM4A(startSec, endSec int) (string, error) {
	if err := utils.CreateFolder(d.OutputDir); err != nil {
		return "", err
	}

	outputPath := filepath.Join(d.OutputDir, fmt.Sprintf("%s%d.m4a", d.baseName(), startSec))
	cmd := exec.Command(
		"yt-dlp",
		"-f", "bestaudio[ext=m4a]/best",
		"--quiet", "--no-warnings",
		"--download-sections", fmt.Sprintf("*%d-%d", startSec, endSec),
		"--force-keyframes-at-cuts",
		"-o", outputPath,
		d.URL,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp section download failed: %v, output: %s", err, output)
	}

	return outputPath, nil
}
