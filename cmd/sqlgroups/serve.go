package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conorfennell/sqlgroups/internal/quiz"
	"github.com/conorfennell/sqlgroups/internal/storage"
	"github.com/conorfennell/sqlgroups/internal/web"
	"github.com/conorfennell/sqlgroups/internal/widget"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	db, err := storage.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open answer log: %w", err)
	}
	defer db.Close()

	w := widget.New(db, a.logger, quiz.WithPacing(a.cfg.Quiz.Pacing()))
	defer w.Close()

	srv, err := web.NewServer(w, db, a.logger.Named("web"))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, a.cfg.HTTP.Addr, a.cfg.HTTP.ShutdownTimeout)
}
