package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

type serveOpts struct {
	// Addr is the address to listen on.
	// If not passed, looks for the PORT env var or defaults to port 8080.
	Addr string

	// ServeAll hosts the server on all addresses (vs localhost) if Addr is unspecified.
	ServeAll bool

	// Handler is the handler to serve.
	Handler http.Handler

	// ShutdownTimeout bounds how long in-flight requests get once ctx is done.
	ShutdownTimeout time.Duration
}

func (o *serveOpts) addr() string {
	if o.Addr != "" {
		return o.Addr
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port <= 0 {
		port = 8080
	}

	host := "localhost"
	if o.ServeAll {
		host = ""
	}
	return host + ":" + strconv.Itoa(port)
}

// serve runs an h2c-capable HTTP server until ctx is done or it fails.
func serve(ctx context.Context, opts *serveOpts) error {
	h2s := &http2.Server{}
	s := &http.Server{
		Addr:    opts.addr(),
		Handler: h2c.NewHandler(opts.Handler, h2s),
	}

	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		err := s.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	eg.Go(func() error {
		<-groupCtx.Done()

		timeout := opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
