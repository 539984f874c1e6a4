package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every timing key the bot knows about, in chronological order.
var AllPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha", "Midnight",
}

// DefaultPrayerNames are the prayers rendered in the daily view, in display order.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// RussianNames maps API prayer names to the names shown to users.
var RussianNames = map[string]string{
	"Fajr":     "Фаджр",
	"Sunrise":  "Восход",
	"Dhuhr":    "Зухр",
	"Asr":      "Аср",
	"Maghrib":  "Магриб",
	"Isha":     "Иша",
	"Midnight": "Полночь",
}

// Emojis maps API prayer names to the emoji prefix of their line.
var Emojis = map[string]string{
	"Fajr":    "🌅",
	"Sunrise": "☀️",
	"Dhuhr":   "🌞",
	"Asr":     "🌤",
	"Maghrib": "🌆",
	"Isha":    "🌙",
}

const defaultEmoji = "🕌"

// LocalName returns the Russian name of a prayer, or the API name when unknown.
func LocalName(name string) string {
	if n, ok := RussianNames[name]; ok {
		return n
	}
	return name
}

// Emoji returns the emoji for a prayer, falling back to a mosque.
func Emoji(name string) string {
	if e, ok := Emojis[name]; ok {
		return e
	}
	return defaultEmoji
}

// ParseTimings converts API timings into a slice of Prayer structs for the given date.
// Names missing from timings are skipped rather than reported.
func ParseTimings(timings api.Timings, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	var prayers []Prayer
	for _, name := range selected {
		raw, ok := timings[name]
		if !ok {
			continue
		}

		t, err := parseTimeStr(raw, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s (%q): %w", name, raw, err)
		}

		prayers = append(prayers, Prayer{Name: name, Time: t})
	}

	return prayers, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil.
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// TimeRemaining returns the duration from now until the prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xч Yм" or "Yм" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0м"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dч %dм", h, m)
	}
	return fmt.Sprintf("%dм", m)
}

// parseTimeStr parses a time string like "15:02" or "15:02 (CEST)" into a time.Time
// on the given date in the given location.
func parseTimeStr(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	// The API sometimes appends a zone abbreviation.
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}
