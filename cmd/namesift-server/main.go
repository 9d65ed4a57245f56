// Command namesift-server exposes the search pipeline over HTTP.
//
// Usage:
//
//	namesift-server -addr :8001
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/osprey-dev/namesift/pkg/httpcache"
	"github.com/osprey-dev/namesift/pkg/namesift"
	"github.com/osprey-dev/namesift/pkg/server"
)

func main() {
	addr := flag.String("addr", ":8001", "listen address")
	debug := flag.Bool("debug", false, "enable debug logging")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "cache time-to-live")
	verify := flag.Int("verify", 0, "content-check the top N results of each search")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
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
	if *verify > 0 {
		opts = append(opts, namesift.WithVerification(*verify))
	}

	srv := server.New(namesift.NewPipeline(opts...), server.WithLogger(logger))

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
