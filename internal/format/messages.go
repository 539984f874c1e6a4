package format

import "time"

var weekdays = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

var weekdaysShort = map[time.Weekday]string{
	time.Monday:    "Пн",
	time.Tuesday:   "Вт",
	time.Wednesday: "Ср",
	time.Thursday:  "Чт",
	time.Friday:    "Пт",
	time.Saturday:  "Сб",
	time.Sunday:    "Вс",
}

// Weekday returns the full Russian weekday name.
func Weekday(d time.Weekday) string {
	return weekdays[d%7]
}

// WeekdayShort returns the two-letter Russian weekday abbreviation.
func WeekdayShort(d time.Weekday) string {
	return weekdaysShort[d%7]
}

// WelcomeMessage is the /start greeting.
func (f *Formatter) WelcomeMessage() string {
	return f.tr.T("welcome")
}

// HelpMessage is the /help text.
func (f *Formatter) HelpMessage() string {
	return f.tr.T("help")
}

// ErrorMessage returns the user-facing text for an error kind.
// Unknown kinds get the general message.
func (f *Formatter) ErrorMessage(kind string) string {
	key := "error_" + kind
	if kind == "" || !f.tr.Has(key) {
		key = "error_" + ErrorGeneral
	}
	return f.tr.T(key)
}

// CitySelectionPrompt introduces the city keyboard.
func (f *Formatter) CitySelectionPrompt() string {
	return f.tr.T("city_prompt")
}

// TodayPrompt introduces the city keyboard for the /today flow.
func (f *Formatter) TodayPrompt() string {
	return f.tr.T("today_prompt")
}

// WeekPrompt introduces the city keyboard for the /week flow.
func (f *Formatter) WeekPrompt() string {
	return f.tr.T("week_prompt")
}

// Text returns any other localized text by key.
func (f *Formatter) Text(key string, args ...interface{}) string {
	return f.tr.T(key, args...)
}
