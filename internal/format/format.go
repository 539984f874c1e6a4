// Package format renders prayer schedules and bot texts as Telegram HTML.
//
// A Formatter never fails: missing prayer keys drop their line, missing
// weekly values render as --:--, unknown error kinds fall back to the
// general message.
package format

import (
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
	"github.com/smokyabdulrahman/prayer-bot/internal/display"
	"github.com/smokyabdulrahman/prayer-bot/internal/i18n"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

// DefaultTimezone is the zone used for dates when none is configured.
const DefaultTimezone = "Europe/Warsaw"

// nameWidth is the column the dot padding aligns prayer names to.
const nameWidth = 12

// weekLength is the number of calendar entries a weekly view shows.
const weekLength = 7

const missingTime = "--:--"

// Error kinds accepted by ErrorMessage.
const (
	ErrorGeneral  = "general"
	ErrorNetwork  = "network"
	ErrorLocation = "location"
	ErrorAPI      = "api"
)

// Formatter renders messages. The zero value is not usable; call New.
type Formatter struct {
	now func() time.Time
	loc *time.Location
	tr  *i18n.Translator
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock injects the time source used when no date is given.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLocation sets the zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithTranslator replaces the embedded Russian texts.
func WithTranslator(tr *i18n.Translator) Option {
	return func(f *Formatter) {
		if tr != nil {
			f.tr = tr
		}
	}
}

// New returns a Formatter using the wall clock, Europe/Warsaw and the
// embedded Russian locale unless overridden.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		now: time.Now,
		loc: defaultLocation(),
		tr:  i18n.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Default is a Formatter with production settings.
var Default = New()

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the zone dates are shown in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Now returns the current time in the formatter's zone.
func (f *Formatter) Now() time.Time {
	return f.now().In(f.loc)
}

// DailyTimes renders one day of prayer times. A zero date means today.
// city is optional and omitted from the header when empty.
func (f *Formatter) DailyTimes(timings api.Timings, city string, date time.Time) string {
	if date.IsZero() {
		date = f.Now()
	}

	var b strings.Builder
	b.WriteString(f.tr.T("daily_title"))
	b.WriteString("\n")
	b.WriteString(cityLine(city))
	b.WriteString("📅 ")
	b.WriteString(Weekday(date.Weekday()))
	b.WriteString(", ")
	b.WriteString(date.Format("02.01.2006"))
	b.WriteString("\n\n")

	var lines []string
	for _, name := range prayer.DefaultPrayerNames {
		raw, ok := timings[name]
		if !ok {
			continue
		}
		lines = append(lines, prayerLine(name, raw))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n")
	b.WriteString(f.tr.T("daily_footer"))
	return b.String()
}

// prayerLine renders "{emoji} <code>{name}{dots}: {time}</code>".
func prayerLine(name, raw string) string {
	local := prayer.LocalName(name)
	pad := nameWidth - utf8.RuneCountInString(local)
	if pad < 0 {
		pad = 0
	}
	return prayer.Emoji(name) + " " + display.Code(display.Escape(local)+strings.Repeat(".", pad)+": "+clock(raw))
}

// WeeklyTimes renders the first seven calendar entries as
// "{DD.MM} {weekday} │ {Fajr} - {Maghrib}" lines.
func (f *Formatter) WeeklyTimes(days []api.Data, city string) string {
	var b strings.Builder
	b.WriteString(f.tr.T("weekly_title"))
	b.WriteString("\n")
	b.WriteString(cityLine(city))
	b.WriteString("\n")

	if len(days) > weekLength {
		days = days[:weekLength]
	}

	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, f.weekLine(d))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n")
	b.WriteString(f.tr.T("weekly_footer"))
	return b.String()
}

func (f *Formatter) weekLine(d api.Data) string {
	date := "--.--"
	short := "--"
	if t, ok := d.Date.Time(f.loc); ok {
		date = t.Format("02.01")
		short = WeekdayShort(t.Weekday())
	}

	fajr := missingTime
	if v, ok := d.Timings["Fajr"]; ok && v != "" {
		fajr = clock(v)
	}
	maghrib := missingTime
	if v, ok := d.Timings["Maghrib"]; ok && v != "" {
		maghrib = clock(v)
	}

	return display.Code(date + " " + short + " │ " + fajr + " - " + maghrib)
}

func cityLine(city string) string {
	if city == "" {
		return ""
	}
	return "📍 " + display.Bold(display.Escape(city)) + "\n"
}

// clock drops the zone suffix the calendar endpoint appends, e.g.
// "02:27 (CEST)" becomes "02:27", and escapes the rest.
func clock(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " ("); idx != -1 {
		s = s[:idx]
	}
	return display.Escape(s)
}
