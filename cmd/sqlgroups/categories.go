package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

func newCategoriesCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the SQL command groups and their example commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := domain.Table()
			out := cmd.OutOrStdout()

			switch output {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(table); err != nil {
					return fmt.Errorf("failed to encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			case "markdown", "md":
				parts := make([]string, len(table))
				for i, c := range table {
					parts[i] = categoryMarkdown(c)
				}
				return printMarkdown(out, strings.Join(parts, "\n"), true)
			case "pretty":
				parts := make([]string, len(table))
				for i, c := range table {
					parts[i] = categoryMarkdown(c)
				}
				return printMarkdown(out, strings.Join(parts, "\n"), false)
			default:
				return fmt.Errorf("unknown output format %q (want yaml, json, markdown or pretty)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pretty", "Output format: yaml, json, markdown or pretty")
	return cmd
}
