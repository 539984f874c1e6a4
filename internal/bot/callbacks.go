package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
	"github.com/smokyabdulrahman/prayer-bot/internal/logging"
	"github.com/smokyabdulrahman/prayer-bot/internal/metrics"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

// weekLength is the number of days the weekly view covers.
const weekLength = 7

// callbackHandler handles one pressed button. msg is the message the button
// belongs to and arg the data after the route prefix. A non-empty alert is
// shown to the user as a popup.
type callbackHandler func(ctx context.Context, msg *tgbotapi.Message, arg string) (alert string, err error)

// Exact-match callbacks
func (r *Router) callbackRoutes() map[string]callbackHandler {
	return map[string]callbackHandler{
		cbTimeToday: func(ctx context.Context, msg *tgbotapi.Message, _ string) (string, error) {
			kb := citiesKeyboard(r.formatter, cbCityPrefix)
			r.edit(ctx, msg.Chat.ID, msg.MessageID, r.formatter.Text("today_callback_prompt"), &kb)
			return "", nil
		},
		cbTimeWeek: func(ctx context.Context, msg *tgbotapi.Message, _ string) (string, error) {
			kb := citiesKeyboard(r.formatter, cbWeekPrefix)
			r.edit(ctx, msg.Chat.ID, msg.MessageID, r.formatter.Text("week_callback_prompt"), &kb)
			return "", nil
		},
		cbTimeMonth: func(context.Context, *tgbotapi.Message, string) (string, error) {
			return r.formatter.Text("month_soon"), nil
		},
		cbBackToMenu: r.onBackToMenu,
	}
}

// Prefix-match callbacks
func (r *Router) callbackPrefixRoutes() []struct {
	Prefix string
	Route  string
	Fn     callbackHandler
} {
	return []struct {
		Prefix string
		Route  string
		Fn     callbackHandler
	}{
		{Prefix: cbCityPrefix, Route: "city", Fn: r.onCity},
		{Prefix: cbWeekPrefix, Route: "week_city", Fn: r.onWeek},
	}
}

func (r *Router) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q.From != nil {
		ctx = logging.WithUserID(ctx, q.From.ID)
	}
	if q.Message == nil || q.Message.Chat == nil {
		r.answer(ctx, q.ID, "")
		return fmt.Errorf("callback %q has no message", q.Data)
	}
	ctx = logging.WithChatID(ctx, q.Message.Chat.ID)

	data := strings.TrimSpace(q.Data)

	var (
		route string
		arg   string
		fn    callbackHandler
	)
	if h, ok := r.callbackRoutes()[data]; ok {
		route, fn = data, h
	} else {
		for _, pr := range r.callbackPrefixRoutes() {
			if strings.HasPrefix(data, pr.Prefix) {
				route, arg, fn = pr.Route, strings.TrimPrefix(data, pr.Prefix), pr.Fn
				break
			}
		}
	}
	if fn == nil {
		metrics.IncUpdate("unknown")
		r.answer(ctx, q.ID, "")
		return fmt.Errorf("unknown callback data %q", data)
	}

	metrics.IncUpdate(route)
	alert, err := fn(ctx, q.Message, arg)
	r.answer(ctx, q.ID, alert)
	return err
}

func (r *Router) onBackToMenu(ctx context.Context, msg *tgbotapi.Message, _ string) (string, error) {
	kb := timeOptionsKeyboard(r.formatter)
	r.edit(ctx, msg.Chat.ID, msg.MessageID, r.formatter.WelcomeMessage(), &kb)
	r.send(ctx, msg.Chat.ID, r.formatter.Text("menu_prompt"), mainMenuKeyboard(r.formatter))
	return "", nil
}

func (r *Router) onCity(ctx context.Context, msg *tgbotapi.Message, name string) (string, error) {
	coords, ok := r.cityCoordinates(name)
	if !ok {
		r.log(ctx).Info().Str("city", name).Msg("unknown city selected")
		return r.formatter.Text("city_not_found"), nil
	}
	r.log(ctx).Info().Str("city", name).Msg("city selected")

	chatID, messageID := msg.Chat.ID, msg.MessageID
	r.edit(ctx, chatID, messageID, r.formatter.Text("processing"), nil)

	day := r.formatter.Now()
	timings, err := r.provider.TimingsByCoordinates(ctx, coords.Latitude, coords.Longitude, day.Format(api.DateLayout))
	if err != nil {
		r.fail(ctx, chatID, messageID, err)
		return "", nil
	}

	r.edit(ctx, chatID, messageID, r.formatter.DailyTimes(timings, name, day), nil)
	r.send(ctx, chatID, r.formatter.Text("follow_up"), mainMenuKeyboard(r.formatter))
	return "", nil
}

func (r *Router) onWeek(ctx context.Context, msg *tgbotapi.Message, name string) (string, error) {
	coords, ok := r.cityCoordinates(name)
	if !ok {
		r.log(ctx).Info().Str("city", name).Msg("unknown city selected")
		return r.formatter.Text("city_not_found"), nil
	}
	r.log(ctx).Info().Str("city", name).Msg("weekly schedule requested")

	chatID, messageID := msg.Chat.ID, msg.MessageID
	r.edit(ctx, chatID, messageID, r.formatter.Text("processing"), nil)

	days, err := UpcomingWeek(ctx, r.provider, coords, r.formatter.Now())
	if err != nil {
		r.fail(ctx, chatID, messageID, err)
		return "", nil
	}

	r.edit(ctx, chatID, messageID, r.formatter.WeeklyTimes(days, name), nil)
	r.send(ctx, chatID, r.formatter.Text("follow_up"), mainMenuKeyboard(r.formatter))
	return "", nil
}

// UpcomingWeek returns the calendar entries from day onwards, topped up from
// the next month when fewer than a week remain in this one.
func UpcomingWeek(ctx context.Context, p Provider, c prayer.Coordinates, day time.Time) ([]api.Data, error) {
	month, err := p.MonthlyCalendar(ctx, c.Latitude, c.Longitude, int(day.Month()), day.Year())
	if err != nil {
		return nil, err
	}

	start := day.Day() - 1
	if start > len(month) {
		start = len(month)
	}
	week := append([]api.Data(nil), month[start:]...)

	if len(week) < weekLength {
		next := time.Date(day.Year(), day.Month()+1, 1, 0, 0, 0, 0, day.Location())
		more, err := p.MonthlyCalendar(ctx, c.Latitude, c.Longitude, int(next.Month()), next.Year())
		if err != nil {
			return nil, err
		}
		week = append(week, more...)
	}

	if len(week) > weekLength {
		week = week[:weekLength]
	}
	return week, nil
}
