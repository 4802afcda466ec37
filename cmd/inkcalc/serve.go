package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/example/inkcalc/internal/devserver"
)

// serveCmd runs the fixture backend.
type serveCmd struct {
	*root
	fs       *flag.FlagSet
	addr     string
	fixtures string
}

func (s *serveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	s := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.addr, "addr", ":8900", "listen address")
	fs.StringVar(&s.fixtures, "fixtures", "", "YAML fixture file (defaults to a single 2 + 2 reply)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *serveCmd) server() (*devserver.Server, error) {
	set := devserver.DefaultFixtures()
	if s.fixtures != "" {
		var err error
		if set, err = devserver.LoadFixtures(s.fixtures); err != nil {
			return nil, err
		}
	}
	return devserver.New(set), nil
}

func (s *serveCmd) Run() error {
	srv, err := s.server()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if s.fixtures != "" {
		go func() {
			if err := srv.Watch(ctx, s.fixtures); err != nil {
				log.Printf("watch %s: %v", s.fixtures, err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              s.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	fmt.Fprintf(s.stderr, "serving fixtures on %s\n", s.addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
