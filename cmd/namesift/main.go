// Command namesift finds ranked online mentions of a person by name.
//
// Usage:
//
//	namesift "Jane Doe"
//	namesift -enhanced "Jane Doe"
//	namesift -activities -platforms instagram,twitter "Jane Doe"
//	namesift -comprehensive -max-results 40 "Jane Doe"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/osprey-dev/namesift/pkg/httpcache"
	"github.com/osprey-dev/namesift/pkg/namesift"
	"github.com/osprey-dev/namesift/pkg/pipeline"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "cache time-to-live")
	enhanced := flag.Bool("enhanced", false, "try the larger comprehensive provider set first")
	verify := flag.Int("verify", 0, "content-check the top N results before returning")
	progress := flag.Bool("progress", false, "print stage progress to stderr")
	activities := flag.Bool("activities", false, "search platform activity instead of profiles")
	platforms := flag.String("platforms", "", "comma-separated platforms for -activities")
	comprehensive := flag.Bool("comprehensive", false, "run the Google category sweep instead of the staged pipeline")
	maxResults := flag.Int("max-results", 20, "result cap for -comprehensive")
	imagePath := flag.String("image", "", "photo of the person (jpeg/png/gif)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: namesift [options] <name>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	name := strings.Join(flag.Args(), " ")

	logLevel := slog.LevelInfo
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := []namesift.Option{namesift.WithLogger(logger)}
	if !*noBrowser {
		opts = append(opts, namesift.WithBrowserCookies())
	}
	if !*noCache {
		cache, err := httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			opts = append(opts, namesift.WithHTTPCache(cache))
		}
	}
	if *enhanced {
		opts = append(opts, namesift.WithEnhanced())
	}
	if *verify > 0 {
		opts = append(opts, namesift.WithVerification(*verify))
	}
	if *progress {
		opts = append(opts, namesift.WithProgress(func(ev pipeline.Progress) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s (%s): %d results\n", ev.Percent, ev.Stage, ev.Platform, ev.ResultsFound)
		}))
	}
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, namesift.WithImage(data))
	}

	ctx := context.Background()

	var results []namesift.RawHit
	switch {
	case *activities:
		var list []string
		for p := range strings.SplitSeq(*platforms, ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		results = namesift.Activities(ctx, name, list, opts...)
	case *comprehensive:
		results = namesift.Comprehensive(ctx, name, *maxResults, opts...)
	default:
		results = namesift.Search(ctx, name, opts...)
	}

	if err := outputJSON(results); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
