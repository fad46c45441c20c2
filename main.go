package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	_ = godotenv.Load()

	switch os.Args[1] {
	case "locate":
		locateCmd := flag.NewFlagSet("locate", flag.ExitOnError)
		configPath := locateCmd.String("config", "", "path to YAML tunables file")
		locateCmd.Parse(os.Args[2:])
		locate(*configPath)

	case "find":
		findCmd := flag.NewFlagSet("find", flag.ExitOnError)
		configPath := findCmd.String("config", "", "path to YAML tunables file")
		findCmd.Parse(os.Args[2:])
		if findCmd.NArg() < 2 {
			fmt.Println("usage: highlightlocator find [-config file] <highlight_clip> <source_recording>")
			os.Exit(1)
		}
		find(findCmd.Arg(0), findCmd.Arg(1), *configPath)

	case "split":
		splitCmd := flag.NewFlagSet("split", flag.ExitOnError)
		duration := splitCmd.Int("d", 3600, "segment duration in seconds")
		splitCmd.Parse(os.Args[2:])
		if splitCmd.NArg() < 2 {
			fmt.Println("usage: highlightlocator split [-d 3600] <audio_file> <output_prefix>")
			os.Exit(1)
		}
		split(splitCmd.Arg(0), splitCmd.Arg(1), *duration)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: highlightlocator <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  locate [-config file]                   interactively locate a highlight clip from URLs")
	fmt.Println("  find   [-config file] <clip> <source>   locate a local clip inside a local recording")
	fmt.Println("  split  [-d 3600] <audio_file> <prefix>  pre-split a long recording into chunks")
}
