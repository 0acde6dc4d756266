package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/classifier"
	"github.com/conorfennell/sqlgroups/internal/domain"
)

func newClassifyCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "classify <sql command>",
		Short: "Show which group a SQL command belongs to",
		Example: `  sqlgroups classify "GRANT SELECT ON users TO bob"
  sqlgroups classify drop table users`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := classifier.Classify(strings.Join(args, " "))
			a.logger.Debug("classified", zap.String("token", res.Token), zap.Stringer("status", res.Status))

			out := cmd.OutOrStdout()
			switch res.Status {
			case classifier.Found:
				return printMarkdown(out, categoryMarkdown(res.Category), plain)
			case classifier.NotFound:
				fmt.Fprintf(out, "The command %s was not found or is not one of the main examples. Try another one!\n", res.Token)
			default:
				fmt.Fprintln(out, "Please type a SQL command.")
			}
			return errNoMatch
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print markdown without terminal styling")
	return cmd
}

func categoryMarkdown(c domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", c.Key, c.Name)
	fmt.Fprintf(&b, "%s\n\n", c.Description)
	b.WriteString("**Example commands:**")
	for _, ex := range c.Examples {
		fmt.Fprintf(&b, " `%s`", ex)
	}
	b.WriteString("\n")
	return b.String()
}

func printMarkdown(w io.Writer, md string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}
