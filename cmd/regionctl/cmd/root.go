// Package cmd implements regionctl, a command-line client for the calendar
// engine. Every command prints JSON.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/region-engine/api"
	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/calendars"
	"github.com/warp/region-engine/config"
	"github.com/warp/region-engine/factory"
	"github.com/warp/region-engine/profile"
	"github.com/warp/region-engine/store/sqlite"
)

// options holds the persistent flags.
type options struct {
	configFile string
	db         string
	at         string
	calendar   string
	tz         string
	locale     string
	profile    string

	now func() time.Time
}

// env is what a command runs against. The store is opened lazily.
type env struct {
	opts     *options
	cfg      *config.Config
	registry *calendars.Registry
	engine   *calendar.Engine
	regions  *factory.RegionFactory

	store    *sqlite.Store
	profiles *profile.Service
}

func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr, time.Now).Execute()
}

func newRootCmd(out, errOut io.Writer, now func() time.Time) *cobra.Command {
	opts := &options{now: now}

	root := &cobra.Command{
		Use:   "regionctl",
		Short: "Region-aware calendar queries",
		Long: `regionctl converts instants to calendar fields and back under a region
(calendar + time zone + locale), and answers unit boundary, arithmetic and
weekend queries.

A region is selected with --profile, or with any of --calendar, --tz and
--locale; missing identifiers come from the configured default region.

Instants are RFC 3339; --at defaults to now.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "TOML config file")
	flags.StringVar(&opts.db, "db", "", "SQLite database path (overrides config)")
	flags.StringVar(&opts.at, "at", "", "instant, RFC 3339 (default: now)")
	flags.StringVar(&opts.calendar, "calendar", "", "calendar id (gregorian, iso8601, buddhist, hebrew)")
	flags.StringVar(&opts.tz, "tz", "", "IANA time zone id")
	flags.StringVar(&opts.locale, "locale", "", "locale id, e.g. nl_NL")
	flags.StringVar(&opts.profile, "profile", "", "stored profile name")

	root.AddCommand(
		newComponentsCmd(opts),
		newComposeCmd(opts),
		newBoundaryCmd(opts, "start", "First instant of the unit containing --at"),
		newBoundaryCmd(opts, "end", "Last instant of the unit containing --at"),
		newBoundaryCmd(opts, "range", "Both boundaries of the unit containing --at"),
		newAddCmd(opts),
		newWeekendCmd(opts),
		newCalendarsCmd(opts),
		newProfilesCmd(opts),
	)
	return root
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func (o *options) open() (*env, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.db != "" {
		cfg.Database.Path = o.db
	}

	registry := calendars.NewRegistry()
	base := factory.NewRegionFactory(calendar.UTC())
	return &env{
		opts:     o,
		cfg:      cfg,
		registry: registry,
		engine:   calendar.NewEngine(registry),
		regions:  factory.NewRegionFactory(base.Region(cfg.DefaultRegion)),
	}, nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

func (e *env) profileService() (*profile.Service, error) {
	if e.profiles != nil {
		return e.profiles, nil
	}
	store, err := sqlite.New(e.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = store
	e.profiles = profile.NewService(store, e.registry)
	return e.profiles, nil
}

// region applies the selection order: --profile, identifiers, the default
// profile, the default region.
func (e *env) region(ctx context.Context) (calendar.Region, error) {
	name := e.opts.profile
	if name == "" && e.opts.calendar == "" && e.opts.tz == "" && e.opts.locale == "" {
		name = e.cfg.DefaultProfile
	}
	if name == "" {
		return e.regions.Region(factory.RegionJSON{
			Calendar: e.opts.calendar,
			TimeZone: e.opts.tz,
			Locale:   e.opts.locale,
		}), nil
	}
	profiles, err := e.profileService()
	if err != nil {
		return calendar.Region{}, err
	}
	return profiles.Region(ctx, name)
}

func (e *env) date(ctx context.Context) (calendar.RegionalDate, error) {
	r, err := e.region(ctx)
	if err != nil {
		return calendar.RegionalDate{}, err
	}
	at, err := factory.ParseInstant(e.opts.at, e.opts.now)
	if err != nil {
		return calendar.RegionalDate{}, err
	}
	return e.engine.In(at, r), nil
}

// run opens an env for the duration of fn.
func (o *options) run(fn func(ctx context.Context, e *env, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, err := o.open()
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd.Context(), e, cmd.OutOrStdout())
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDate(out io.Writer, d calendar.RegionalDate) error {
	dto, err := api.NewDateDTO(d)
	if err != nil {
		return err
	}
	return printJSON(out, dto)
}

// parseAssignments reads unit=value arguments.
func parseAssignments(args []string) (calendar.Components, error) {
	var c calendar.Components
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return calendar.Components{}, fmt.Errorf("%q: expected unit=value", arg)
		}
		u, err := calendar.ParseUnit(name)
		if err != nil {
			return calendar.Components{}, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return calendar.Components{}, fmt.Errorf("%q: %w", arg, err)
		}
		c = c.Set(u, n)
	}
	return c, nil
}
