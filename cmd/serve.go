package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blue-edge/carbonclock/internal/config"
	"github.com/blue-edge/carbonclock/internal/kiosk"
	"github.com/blue-edge/carbonclock/internal/poll"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the kiosk server with a background refresh loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := validateSavings(cfg); err != nil {
			return err
		}

		return runServe(ctx, cfg, resolvePort(servePort, cfg))
	},
}

// resolvePort prefers the --port flag over config.
func resolvePort(flag int, c *config.Config) int {
	if flag != 0 {
		return flag
	}
	return c.Server.Port
}

// runServe builds the poller and kiosk server from c and runs both until
// ctx is cancelled, then shuts the server down gracefully.
func runServe(ctx context.Context, c *config.Config, port int) error {
	holder := poll.NewHolder()
	poller := poll.NewPoller(newAggregator(c), holder, poll.Options{
		Unit:       c.Savings.Unit,
		Density:    c.Savings.Density,
		OffsetTons: c.Savings.OffsetTons,
		Interval:   time.Duration(c.Poll.IntervalSecs) * time.Second,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: kiosk.NewRouter(holder),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poller.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		return srv.Shutdown(context.Background())
	})
	g.Go(func() error {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	return g.Wait()
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
