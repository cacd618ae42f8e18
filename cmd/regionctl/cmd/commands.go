package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/warp/region-engine/api"
	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/factory"
)

func newComponentsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "Calendar fields of --at in the region",
		Args:  cobra.NoArgs,
		RunE: o.run(func(ctx context.Context, e *env, out io.Writer) error {
			d, err := e.date(ctx)
			if err != nil {
				return err
			}
			return printDate(out, d)
		}),
	}
}

func newComposeCmd(o *options) *cobra.Command {
	var onBase bool
	cmd := &cobra.Command{
		Use:   "compose unit=value...",
		Short: "Instant from calendar fields",
		Long: `Composes an instant from unit=value pairs, e.g.

  regionctl compose year=1999 month=12 day=31 --tz Europe/Amsterdam

Without --base, fields not given take their defaults (first day, midnight).
With --base, they are taken from --at.`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.Flags().BoolVar(&onBase, "base", false, "fill missing fields from --at")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		partial, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return o.run(func(ctx context.Context, e *env, out io.Writer) error {
			var d calendar.RegionalDate
			if onBase {
				base, err := e.date(ctx)
				if err != nil {
					return err
				}
				d, err = base.Compose(partial)
				if err != nil {
					return err
				}
			} else {
				r, err := e.region(ctx)
				if err != nil {
					return err
				}
				d, err = e.engine.Compose(partial, r)
				if err != nil {
					return err
				}
			}
			return printDate(out, d)
		})(cmd, args)
	}
	return cmd
}

func newBoundaryCmd(o *options, which, short string) *cobra.Command {
	return &cobra.Command{
		Use:   which + " <unit>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := calendar.ParseUnit(args[0])
			if err != nil {
				return err
			}
			return o.run(func(ctx context.Context, e *env, out io.Writer) error {
				d, err := e.date(ctx)
				if err != nil {
					return err
				}
				switch which {
				case "start":
					d, err = d.StartOf(unit)
				case "end":
					d, err = d.EndOf(unit)
				default:
					rng, err := d.UnitRange(unit)
					if err != nil {
						return err
					}
					return printJSON(out, api.NewRangeDTO(rng))
				}
				if err != nil {
					return err
				}
				return printDate(out, d)
			})(cmd, args)
		},
	}
}

func newAddCmd(o *options) *cobra.Command {
	var subtract bool
	cmd := &cobra.Command{
		Use:   "add unit=value...",
		Short: "Move --at by calendar fields",
		Long: `Adds unit=value pairs to --at, e.g.

  regionctl add month=1 day=-1 --at 2000-01-31T00:00:00Z

Days, weeks and larger units keep the wall clock; hours and smaller units
are elapsed time.`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.Flags().BoolVar(&subtract, "subtract", false, "move backwards")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		delta, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return o.run(func(ctx context.Context, e *env, out io.Writer) error {
			d, err := e.date(ctx)
			if err != nil {
				return err
			}
			if subtract {
				d, err = d.Subtract(delta)
			} else {
				d, err = d.Add(delta)
			}
			if err != nil {
				return err
			}
			return printDate(out, d)
		})(cmd, args)
	}
	return cmd
}

func newWeekendCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "weekend this|next|previous",
		Short:     "Weekend containing, after or before --at",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"this", "next", "previous"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(ctx context.Context, e *env, out io.Writer) error {
				d, err := e.date(ctx)
				if err != nil {
					return err
				}
				query := d.ThisWeekend
				switch args[0] {
				case "next":
					query = d.NextWeekend
				case "previous":
					query = d.PreviousWeekend
				}
				rng, ok, err := query()
				if err != nil {
					return err
				}
				resp := api.WeekendDTO{Region: d.Region()}
				if ok {
					dto := api.NewRangeDTO(rng)
					resp.Weekend = &dto
				}
				return printJSON(out, resp)
			})(cmd, args)
		},
	}
}

func newCalendarsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "Supported calendar ids",
		Args:  cobra.NoArgs,
		RunE: o.run(func(_ context.Context, e *env, out io.Writer) error {
			return printJSON(out, e.registry.Calendars())
		}),
	}
}

func newProfilesCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage stored regions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: o.run(func(ctx context.Context, e *env, out io.Writer) error {
			profiles, err := e.profileService()
			if err != nil {
				return err
			}
			all, err := profiles.List(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, all)
		}),
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Store --calendar, --tz and --locale under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(ctx context.Context, e *env, out io.Writer) error {
				profiles, err := e.profileService()
				if err != nil {
					return err
				}
				r := e.regions.Region(factory.RegionJSON{
					Calendar: o.calendar,
					TimeZone: o.tz,
					Locale:   o.locale,
				})
				p, err := profiles.Create(ctx, args[0], r)
				if err != nil {
					return err
				}
				return printJSON(out, p)
			})(cmd, args)
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(ctx context.Context, e *env, out io.Writer) error {
				profiles, err := e.profileService()
				if err != nil {
					return err
				}
				if err := profiles.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "{\"deleted\": %q}\n", args[0])
				return nil
			})(cmd, args)
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
