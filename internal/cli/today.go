package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
	"github.com/smokyabdulrahman/prayer-bot/internal/bot"
	"github.com/smokyabdulrahman/prayer-bot/internal/display"
	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

// previewOptions holds the flags of one preview command.
type previewOptions struct {
	city      string
	country   string
	latitude  float64
	longitude float64
	date      string
	json      bool
}

var errNoLocation = errors.New("no location: use --city or --latitude and --longitude")

func (o *previewOptions) addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.city, "city", "", "City name; one of 'prayer-bot cities' or any city the API knows")
	cmd.Flags().StringVar(&o.country, "country", "", "Country for cities outside the built-in list (default from config)")
	cmd.Flags().Float64Var(&o.latitude, "latitude", 0, "Latitude")
	cmd.Flags().Float64Var(&o.longitude, "longitude", 0, "Longitude")
}

func newTodayCmd() *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Preview the daily message",
		Long:  "Fetch prayer times and print the daily message the bot would send, with markup rendered for the terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, opts)
		},
	}
	opts.addLocationFlags(cmd)
	cmd.Flags().StringVar(&opts.date, "date", "", "Date as DD-MM-YYYY (default: today)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output prayer timings as JSON")
	return cmd
}

func newWeekCmd() *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Preview the weekly message",
		Long:  "Fetch the monthly calendar and print the seven-day message the bot would send.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeek(cmd, opts)
		},
	}
	opts.addLocationFlags(cmd)
	return cmd
}

// target is the place a preview is rendered for.
type target struct {
	Label  string
	Coords prayer.Coordinates
	ByCity bool // city unknown to the table; ask the API by name
}

func resolveTarget(cmd *cobra.Command, opts *previewOptions) (target, error) {
	flags := cmd.Flags()
	hasLat, hasLon := flags.Changed("latitude"), flags.Changed("longitude")

	switch {
	case hasLat && hasLon:
		return target{Coords: prayer.Coordinates{Latitude: opts.latitude, Longitude: opts.longitude}}, nil
	case hasLat || hasLon:
		return target{}, errors.New("--latitude and --longitude must be used together")
	case strings.TrimSpace(opts.city) != "":
		name := strings.TrimSpace(opts.city)
		if c, ok := prayer.LookupCity(name); ok {
			return target{Label: name, Coords: c}, nil
		}
		return target{Label: name, ByCity: true}, nil
	default:
		return target{}, errNoLocation
	}
}

func runToday(cmd *cobra.Command, opts *previewOptions) error {
	client, formatter, err := previewSetup(cmd)
	if err != nil {
		return err
	}
	t, err := resolveTarget(cmd, opts)
	if err != nil {
		return err
	}

	day := formatter.Now()
	if opts.date != "" {
		day, err = time.ParseInLocation(api.DateLayout, opts.date, formatter.Location())
		if err != nil {
			return fmt.Errorf("invalid --date %q: want DD-MM-YYYY", opts.date)
		}
	}
	date := day.Format(api.DateLayout)

	var timings api.Timings
	if t.ByCity {
		timings, err = client.TimingsByCity(cmd.Context(), t.Label, opts.country, date)
	} else {
		timings, err = client.TimingsByCoordinates(cmd.Context(), t.Coords.Latitude, t.Coords.Longitude, date)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return printTodayJSON(out, t, date, timings)
	}

	fmt.Fprintln(out, display.Render(formatter.DailyTimes(timings, t.Label, day)))
	if line := nextPrayerLine(formatter, timings, day); line != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, display.Accent(line))
	}
	return nil
}

// nextPrayerLine describes the next prayer when day is today, else "".
func nextPrayerLine(f *format.Formatter, timings api.Timings, day time.Time) string {
	now := f.Now()
	if day.Format(api.DateLayout) != now.Format(api.DateLayout) {
		return ""
	}
	prayers, err := prayer.ParseTimings(timings, now, f.Location(), prayer.DefaultPrayerNames)
	if err != nil {
		return ""
	}
	next := prayer.NextPrayer(prayers, now)
	if next == nil {
		return ""
	}
	remaining := prayer.FormatRemaining(prayer.TimeRemaining(*next, now))
	return f.Text("next_prayer", prayer.LocalName(next.Name), next.Time.Format("15:04"), remaining)
}

// todayJSON is the JSON output structure for the today command.
type todayJSON struct {
	City      string            `json:"city,omitempty"`
	Latitude  float64           `json:"latitude,omitempty"`
	Longitude float64           `json:"longitude,omitempty"`
	Date      string            `json:"date"`
	Timings   map[string]string `json:"timings"`
}

// printTodayJSON writes the prayer timings; provider extras such as Imsak are dropped.
func printTodayJSON(w io.Writer, t target, date string, timings api.Timings) error {
	out := todayJSON{
		City:      t.Label,
		Latitude:  t.Coords.Latitude,
		Longitude: t.Coords.Longitude,
		Date:      date,
		Timings:   make(map[string]string, len(prayer.AllPrayerNames)),
	}
	for _, name := range prayer.AllPrayerNames {
		if v, ok := timings[name]; ok {
			out.Timings[name] = v
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func runWeek(cmd *cobra.Command, opts *previewOptions) error {
	client, formatter, err := previewSetup(cmd)
	if err != nil {
		return err
	}
	t, err := resolveTarget(cmd, opts)
	if err != nil {
		return err
	}
	if t.ByCity {
		return fmt.Errorf("unknown city %q: the weekly view needs a city from 'prayer-bot cities' or coordinates", t.Label)
	}

	days, err := bot.UpcomingWeek(cmd.Context(), client, t.Coords, formatter.Now())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), display.Render(formatter.WeeklyTimes(days, t.Label)))
	return nil
}
