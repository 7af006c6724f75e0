package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/schedule"
	"github.com/me/solvebatch/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only status API, optionally running batches on a cron schedule",
		Long: `Exposes the outcome journal and sentinel state over HTTP for humans and
dashboards. The quiz-content pipeline keeps polling the sentinel files on
disk; this surface adds nothing it depends on.

With --cron, a full batch run is started on the given schedule. Ticks that
fire while a batch is still running are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			journal, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer journal.Close()

			if cronSpec != "" {
				sched := schedule.New(cronSpec, newRunner(journal), logger)
				if err := sched.Start(ctx); err != nil {
					return err
				}
				defer sched.Stop()
			}

			srv := &http.Server{
				Addr:    cfg.Addr,
				Handler: server.New(cfg, journal, logger).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("status API listening", "addr", cfg.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("status API stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron schedule for automatic full runs (e.g. \"0 3 * * *\")")
	return cmd
}
