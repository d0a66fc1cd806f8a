package cli

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

func locateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "locate LOCATION...",
		Short:   "Project DONKI source locations such as N10E20 onto the sphere",
		Example: "  flarectl locate S19W89 N10E20 --radius 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]locationView, 0, len(args))
			for _, loc := range args {
				coord, found := domain.LookupLocation(loc)
				out = append(out, locationView{
					Location:   loc,
					Found:      found,
					Coordinate: coord,
					Position:   domain.Project(coord, opts.radius),
				})
			}
			return renderLocations(cmd.OutOrStdout(), opts.output, opts.radius, out)
		},
	}
}

func classifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "classify CLASS...",
		Short:   "Show severity score and rendering intensity for flare classes",
		Example: "  flarectl classify X8.7 M1 C3.2",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classView, 0, len(args))
			for _, ct := range args {
				_, ok := domain.ParseFlareClass(ct)
				out = append(out, classView{
					ClassType: ct,
					Parsed:    ok,
					Score:     domain.SeverityScore(ct),
					Intensity: domain.Intensity(ct),
				})
			}
			return renderClasses(cmd.OutOrStdout(), opts.output, out)
		},
	}
}
