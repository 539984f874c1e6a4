package api

import (
	"encoding/json"
	"strconv"
	"time"
)

// envelope is the top-level shape of every AlAdhan response.
// Data stays raw because error responses carry a plain string there.
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Timings maps English prayer names to "HH:MM" strings.
// Calendar entries may carry a zone suffix like "02:27 (CEST)".
type Timings map[string]string

// primaryKeys must be present in every successful timings result.
var primaryKeys = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Missing returns the primary prayer names absent from t, in order.
func (t Timings) Missing() []string {
	var missing []string
	for _, k := range primaryKeys {
		if v, ok := t[k]; !ok || v == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// Data holds one day of prayer timings with its date.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
}

// DateInfo contains date representations.
type DateInfo struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Gregorian GregorianDate `json:"gregorian"`
}

// GregorianDate represents the Gregorian date from the API response.
type GregorianDate struct {
	Date string `json:"date"` // e.g. "15-06-2024"
}

// Time returns the calendar day of d in loc. The Unix timestamp wins;
// the gregorian DD-MM-YYYY string is the fallback.
func (d DateInfo) Time(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if d.Timestamp != "" {
		if sec, err := strconv.ParseInt(d.Timestamp, 10, 64); err == nil {
			return time.Unix(sec, 0).In(loc), true
		}
	}
	if d.Gregorian.Date != "" {
		if t, err := time.ParseInLocation("02-01-2006", d.Gregorian.Date, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
