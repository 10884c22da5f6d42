package main

import (
	"context"
	"fmt"
	"polyglot/internal/api"
	"polyglot/internal/config"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func routesCommand(cfg *config.Config, startedAt time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Prints the route table and pipeline stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := api.New(apiDeps(cfg, startedAt), api.NewOptions(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = a.Shutdown(context.Background()) }()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "stages: %s\n\n", strings.Join(a.Stages(), " -> "))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "METHOD\tPATTERN\tSUMMARY")
			for _, r := range a.Routes() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, r.Pattern, r.Summary)
			}

			return tw.Flush()
		},
	}
}
