// Command gridserve hosts grid editing sessions over WebSocket.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samthor/treegrid/gridserve"
	"github.com/samthor/treegrid/internal/logger"
)

var (
	flagAddr    = flag.String("addr", "", "listen address (default localhost:$PORT, or localhost:8080)")
	flagAll     = flag.Bool("all", false, "listen on all interfaces if -addr is unset")
	flagDir     = flag.String("dir", ".", "directory sessions may load and save within")
	flagResume  = flag.Int("resume", gridserve.DefaultResumeCapacity, "detached sessions kept for resuming")
	flagPing    = flag.Duration("ping", 30*time.Second, "ping interval, zero to disable")
	flagOrigins = flag.String("origins", "", "comma-separated extra origin patterns to accept")
	flagVerbose = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	log := logger.NewDefaultLogger(level)

	if err := run(log); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	var origins []string
	if *flagOrigins != "" {
		origins = strings.Split(*flagOrigins, ",")
	}

	s, err := gridserve.New(&gridserve.Options{
		ResumeCapacity: *flagResume,
		PingEvery:      *flagPing,
		Dir:            *flagDir,
		OriginPatterns: origins,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(gridserve.Collectors()...)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/status", jsonHandler(log, serverStatus(s)))
	mux.Handle("/", s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &serveOpts{Addr: *flagAddr, ServeAll: *flagAll, Handler: mux}
	log.Info("serving", "addr", opts.addr(), "dir", *flagDir)
	return serve(ctx, opts)
}
