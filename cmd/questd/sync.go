package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/questkit/pkg/prometheus"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) sync(c *cli.Context) error {
	cfg := xcontext.Configs(s.ctx)
	projectID := c.String("project")
	if projectID == "" {
		projectID = cfg.Host.ProjectID
	}

	if projectID == "" {
		return cli.Exit("No project is given", 1)
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())
	httpSrv := &http.Server{
		Addr:              cfg.Metrics.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		xcontext.Logger(ctx).Infof("Serving metrics on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xcontext.Logger(ctx).Errorf("Cannot serve metrics: %v", err)
		}
	}()

	if err := s.scheduler.Start(ctx, projectID); err != nil {
		return err
	}
	xcontext.Logger(ctx).Infof("Syncing play sessions of project %s", projectID)

	<-ctx.Done()
	s.scheduler.Stop(projectID)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
