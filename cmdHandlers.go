package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/JoeYang1412/HighlightLocator/config"
	"github.com/JoeYang1412/HighlightLocator/download"
	"github.com/JoeYang1412/HighlightLocator/media"
	"github.com/JoeYang1412/HighlightLocator/search"
	"github.com/JoeYang1412/HighlightLocator/utils"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

var stdin = bufio.NewReader(os.Stdin)

// locate is the interactive flow: prompt for the highlight and source
// URLs, download both, and search.
func locate(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		color.Red("error loading config: %v", err)
		os.Exit(1)
	}

	clipURL := promptYouTubeURL("Please enter the highlight video URL: ")
	sourceURL := promptYouTubeURL("Please enter the original video (live stream) URL: ")
	clipStart, clipEnd := promptTimeRange()

	started := time.Now()

	fmt.Println("downloading highlight section...")
	clipPath, err := download.NewDownloader(clipURL, cfg.DownloadDir).DownloadSectionM4A(clipStart, clipEnd)
	if err != nil {
		color.Red("error downloading highlight: %v", err)
		os.Exit(1)
	}

	fmt.Println("downloading source recording...")
	sourcePath, err := download.NewDownloader(sourceURL, cfg.DownloadDir).DownloadM4A()
	if err != nil {
		color.Red("error downloading source: %v", err)
		os.Exit(1)
	}

	defer cleanup(cfg.DownloadDir, cfg.SegmentDir)
	runSearch(cfg, clipPath, sourcePath, started)
}

// find locates a local highlight clip inside a local source recording.
func find(clipPath, sourcePath string, configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		color.Red("error loading config: %v", err)
		os.Exit(1)
	}

	defer cleanup(cfg.SegmentDir)
	runSearch(cfg, clipPath, sourcePath, time.Now())
}

// split pre-chunks a long recording without searching it.
func split(inputPath, prefix string, duration int) {
	count, err := media.SplitSegments(inputPath, duration, prefix)
	if err != nil {
		color.Red("error splitting %s: %v", inputPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d segments of up to %ds each to %s_*.m4a\n", count, duration, prefix)
}

// runSearch decodes the clip, pre-splits the source, and drives the
// harness over the resulting chunks.
func runSearch(cfg config.Config, clipPath, sourcePath string, started time.Time) {
	log := utils.Logger()

	clip, err := media.DecodeSamples(clipPath, cfg.Fingerprint.SampleRate)
	if err != nil {
		color.Red("error decoding highlight clip: %v", err)
		os.Exit(1)
	}

	prefix := filepath.Join(cfg.SegmentDir, "segments")
	numChunks, err := media.SplitSegments(sourcePath, cfg.Search.SplitDuration, prefix)
	if err != nil {
		color.Red("error splitting source recording: %v", err)
		os.Exit(1)
	}
	log.Info("source pre-split", "chunks", numChunks, "split_duration", cfg.Search.SplitDuration)

	harness, err := search.NewHarness(cfg.Fingerprint, cfg.Search)
	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}

	bar := progressbar.Default(-1, "scanning windows")
	harness.OnWindow = func(chunk int, segStart, segEnd float64) {
		bar.Add(1)
		bar.Describe(fmt.Sprintf("querying %s ~ %s",
			utils.SecToTime(chunk*cfg.Search.SplitDuration+int(segStart)),
			utils.SecToTime(chunk*cfg.Search.SplitDuration+int(segEnd))))
	}

	source := &media.SegmentSource{
		Prefix:     prefix,
		Count:      numChunks,
		SampleRate: cfg.Fingerprint.SampleRate,
	}

	result, err := harness.Locate(clip, source)
	bar.Finish()
	fmt.Println()
	if err != nil {
		color.Red("error during search: %v", err)
		os.Exit(1)
	}

	if !result.Found {
		color.Yellow("no matching segment found in the entire recording")
	} else {
		color.Green("highlight starts at %s (offset %.2fs, %d aligned hashes)",
			result.Timecode, result.OffsetSeconds, result.BestCount)
	}
	fmt.Printf("processing time: %.2fs\n", time.Since(started).Seconds())
}

func cleanup(dirs ...string) {
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			utils.Logger().Warn("cleanup failed", "dir", dir, "error", err)
		}
	}
	os.RemoveAll(media.TmpDir)
}

func promptYouTubeURL(prompt string) string {
	for {
		fmt.Print(prompt)
		line, err := stdin.ReadString('\n')
		if err != nil {
			color.Red("error reading input: %v", err)
			os.Exit(1)
		}
		url := strings.TrimSpace(line)
		if download.IsValidYouTubeURL(url) {
			return download.CleanURL(url)
		}
		fmt.Println("Invalid input. Please double-check and enter a valid YouTube URL.")
	}
}

// promptTimeRange asks for the highlight's position inside its own
// video as minute:second pairs and returns start and end in seconds.
func promptTimeRange() (int, int) {
	for {
		fmt.Println("\nPlease enter the start time of the highlight (minutes:seconds):")
		startMinute := promptNumber("Start time (minutes, default 0): ", 0, 0, 60)
		startSecond := promptNumber("Start time (seconds, default 0): ", 0, 0, 60)

		fmt.Println("\nPlease enter the end time of the highlight (minutes:seconds):")
		endMinute := promptNumber("End time (minutes, default 0): ", 0, 0, 60)
		endSecond := promptNumber("End time (seconds, default 10): ", 10, 0, 60)

		start := utils.TimeToSec(0, startMinute, startSecond)
		end := utils.TimeToSec(0, endMinute, endSecond)
		if start >= 0 && end > start {
			return start, end
		}
		fmt.Println("Please ensure that the start time is earlier than the end time.")
	}
}

func promptNumber(prompt string, fallback, min, max int) int {
	for {
		fmt.Print(prompt)
		line, err := stdin.ReadString('\n')
		if err != nil {
			color.Red("error reading input: %v", err)
			os.Exit(1)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}
		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Invalid input: please enter an integer.")
			continue
		}
		if value < min || value >= max {
			fmt.Printf("Invalid input: the value must be at least %d and less than %d.\n", min, max)
			continue
		}
		return value
	}
}
