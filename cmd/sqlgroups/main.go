package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/config"
	"github.com/conorfennell/sqlgroups/internal/logging"
)

// errNoMatch makes the process exit with status 1 without printing anything more.
var errNoMatch = errors.New("no matching category")

// annotationLogging set to "quiet" keeps logs off the terminal unless log.file is set.
const annotationLogging = "logging"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sqlgroups",
		Short: "Learn the four SQL command groups: DDL, DML, DCL and TCL",
		Long: `sqlgroups tells you which group a SQL command belongs to and quizzes you on it.

Run "sqlgroups serve" for the browser page or "sqlgroups play" for the terminal version.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			if cmd.Annotations[annotationLogging] == "quiet" {
				a.logger, err = logging.NewQuiet(cfg.Log)
			} else {
				a.logger, err = logging.New(cfg.Log)
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(a),
		newPlayCmd(a),
		newClassifyCmd(a),
		newCategoriesCmd(a),
	)
	return root
}
