package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/FranksOps/leadscout/internal/storage"
)

var (
	leadsLimit int
	leadsSince time.Duration
	leadsAll   bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored lead history",
	Long:  "Lists leads recorded in the configured store, newest first. Requires store.driver to be set.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		if st == nil {
			return fmt.Errorf("no lead store configured; set store.driver and store.dsn")
		}
		defer st.Close() //nolint:errcheck

		filter := storage.Filter{Limit: leadsLimit}
		if !leadsAll {
			filter.Client = cfg.Client.Name
		}
		if leadsSince > 0 {
			since := time.Now().Add(-leadsSince)
			filter.Since = &since
		}

		recs, err := st.Query(ctx, filter)
		if err != nil {
			return fmt.Errorf("leads: %w", err)
		}
		if len(recs) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tCLIENT\tTITLE\tURL")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Client, r.Title, r.URL)
		}
		return w.Flush()
	},
}

func init() {
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 20, "maximum number of leads to list (0 for all)")
	leadsCmd.Flags().DurationVar(&leadsSince, "since", 0, "only list leads collected within this duration, e.g. 24h")
	leadsCmd.Flags().BoolVar(&leadsAll, "all", false, "list leads for every client, not just --client")
}
