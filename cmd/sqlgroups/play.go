package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/sqlgroups/internal/storage"
	"github.com/conorfennell/sqlgroups/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run the terminal version",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{annotationLogging: "quiet"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.OpenMemory()
			if err != nil {
				return fmt.Errorf("failed to open answer log: %w", err)
			}
			defer db.Close()

			if err := tui.Run(db, a.logger, a.cfg.Quiz.Pacing()); err != nil {
				return err
			}

			st, err := db.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if st.Asked > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "You answered %d of %d correctly (%.0f%%).\n", st.Correct, st.Asked, st.Accuracy()*100)
			}
			return nil
		},
	}
}
