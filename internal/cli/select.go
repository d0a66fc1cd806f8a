package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

func selectCmd(opts *options) *cobra.Command {
	var start, end string
	var top int

	c := &cobra.Command{
		Use:   "select",
		Short: "Fetch flares for a date range and show the most significant one",
		Example: `  flarectl select --start 2024-05-01 --end 2024-05-16
  flarectl select --days 7 --top 5 -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := resolveRange(start, end, opts.days)
			if err != nil {
				return err
			}

			records, err := opts.client().FetchFlares(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("fetch flares %s: %w", r, err)
			}

			sel := domain.BuildSelection(uuid.NewString(), r, records, opts.radius)
			opts.log().Debug("selection built", "fetch_id", sel.FetchID, "flare_count", sel.FlareCount)

			var ranked []domain.FlareRecord
			if top > 0 {
				ranked = domain.RankFlares(records)
				if len(ranked) > top {
					ranked = ranked[:top]
				}
			}
			return renderSelection(cmd.OutOrStdout(), opts.output, sel, ranked)
		},
	}

	c.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD")
	c.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD")
	c.Flags().IntVar(&opts.days, "days", 30, "trailing days ending today, used when --start/--end are not set (env DEFAULT_RANGE_DAYS)")
	c.Flags().IntVar(&top, "top", 0, "also list the N highest-ranked located flares")
	return c
}

// resolveRange prefers explicit dates and falls back to trailing days.
func resolveRange(start, end string, days int) (domain.DateRange, error) {
	if start == "" && end == "" {
		if days < 1 {
			return domain.DateRange{}, fmt.Errorf("--days must be at least 1")
		}
		return domain.TrailingDays(domain.Now(), days), nil
	}
	if end == "" {
		end = start
	}
	if start == "" {
		start = end
	}
	return domain.ParseDateRange(start, end)
}
