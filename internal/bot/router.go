// Package bot routes Telegram updates to the prayer-time provider and sends
// the formatted replies.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/logging"
	"github.com/smokyabdulrahman/prayer-bot/internal/metrics"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

// Sender is the part of the Telegram API the router talks to.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Provider fetches prayer schedules. *api.Client satisfies it.
type Provider interface {
	TimingsByCoordinates(ctx context.Context, lat, lon float64, date string) (api.Timings, error)
	MonthlyCalendar(ctx context.Context, lat, lon float64, month, year int) ([]api.Data, error)
}

// ZoneLocator resolves the time zone of shared coordinates.
type ZoneLocator interface {
	Location(latitude, longitude float64) (*time.Location, error)
}

// Router handles one update at a time. It keeps no per-chat state, so a
// single Router may serve many workers.
type Router struct {
	sender    Sender
	provider  Provider
	formatter *format.Formatter
	zones     ZoneLocator
	logger    zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithZoneLocator makes shared locations use their own local date.
func WithZoneLocator(z ZoneLocator) Option {
	return func(r *Router) {
		r.zones = z
	}
}

// NewRouter wires a Router. A nil formatter means format.Default.
func NewRouter(sender Sender, provider Provider, f *format.Formatter, opts ...Option) *Router {
	if f == nil {
		f = format.Default
	}
	r := &Router{
		sender:    sender,
		provider:  provider,
		formatter: f,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle dispatches one update. Provider and Telegram failures are reported
// to the user and logged; the returned error only signals updates the router
// could not make sense of.
func (r *Router) Handle(ctx context.Context, upd tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	switch {
	case upd.CallbackQuery != nil:
		return r.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		return r.handleMessage(ctx, upd.Message)
	default:
		return nil
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}
	chatID := msg.Chat.ID
	ctx = logging.WithChatID(ctx, chatID)
	if msg.From != nil {
		ctx = logging.WithUserID(ctx, msg.From.ID)
	}

	if msg.Location != nil {
		metrics.IncUpdate("location")
		return r.onLocation(ctx, chatID, msg.Location.Latitude, msg.Location.Longitude)
	}

	if msg.IsCommand() {
		cmd := msg.Command()
		switch cmd {
		case "start":
			metrics.IncUpdate("start")
			r.send(ctx, chatID, r.formatter.WelcomeMessage(), mainMenuKeyboard(r.formatter))
		case "help":
			metrics.IncUpdate("help")
			r.send(ctx, chatID, r.formatter.HelpMessage(), mainMenuKeyboard(r.formatter))
		case "today":
			metrics.IncUpdate("today")
			r.send(ctx, chatID, r.formatter.TodayPrompt(), citiesKeyboard(r.formatter, cbCityPrefix))
		case "week":
			metrics.IncUpdate("week")
			r.send(ctx, chatID, r.formatter.WeekPrompt(), citiesKeyboard(r.formatter, cbWeekPrefix))
		case "cities":
			metrics.IncUpdate("cities")
			r.send(ctx, chatID, r.formatter.CitySelectionPrompt(), citiesKeyboard(r.formatter, cbCityPrefix))
		default:
			metrics.IncUpdate("unknown")
			r.log(ctx).Debug().Str("command", cmd).Msg("ignoring unknown command")
		}
		return nil
	}

	switch strings.TrimSpace(msg.Text) {
	case r.formatter.Text("btn_choose_city"), r.formatter.Text("btn_city_instead"):
		metrics.IncUpdate("cities")
		r.send(ctx, chatID, r.formatter.CitySelectionPrompt(), citiesKeyboard(r.formatter, cbCityPrefix))
	case r.formatter.Text("btn_today"):
		metrics.IncUpdate("today")
		r.send(ctx, chatID, r.formatter.TodayPrompt(), citiesKeyboard(r.formatter, cbCityPrefix))
	case r.formatter.Text("btn_week"):
		metrics.IncUpdate("week")
		r.send(ctx, chatID, r.formatter.WeekPrompt(), citiesKeyboard(r.formatter, cbWeekPrefix))
	case r.formatter.Text("btn_share_location"):
		// Clients that cannot share a location send the label as text.
		metrics.IncUpdate("share_location")
		r.send(ctx, chatID, r.formatter.Text("location_prompt"), locationRequestKeyboard(r.formatter))
	default:
		metrics.IncUpdate("unknown")
	}
	return nil
}

func (r *Router) onLocation(ctx context.Context, chatID int64, lat, lon float64) error {
	r.log(ctx).Info().Float64("lat", lat).Float64("lon", lon).Msg("location shared")

	processing, err := r.send(ctx, chatID, r.formatter.Text("processing"), nil)
	if err != nil {
		return nil
	}

	day := r.formatter.Now()
	if r.zones != nil {
		if loc, err := r.zones.Location(lat, lon); err == nil {
			day = day.In(loc)
		} else {
			r.log(ctx).Debug().Err(err).Msg("falling back to the display time zone")
		}
	}

	timings, err := r.provider.TimingsByCoordinates(ctx, lat, lon, day.Format(api.DateLayout))
	if err != nil {
		r.fail(ctx, chatID, processing.MessageID, err)
		return nil
	}

	r.edit(ctx, chatID, processing.MessageID, r.formatter.DailyTimes(timings, "", day), nil)
	r.send(ctx, chatID, r.formatter.Text("follow_up"), mainMenuKeyboard(r.formatter))
	return nil
}

// fail replaces the processing message with an error text and a way back to
// the menu.
func (r *Router) fail(ctx context.Context, chatID int64, messageID int, err error) {
	kind := format.ErrorGeneral
	var pe *api.ProviderError
	if errors.As(err, &pe) {
		kind = format.ErrorAPI
	}
	r.log(ctx).Error().Err(err).Str("kind", kind).Msg("failed to get prayer times")

	kb := returnToMenuKeyboard(r.formatter)
	r.edit(ctx, chatID, messageID, r.formatter.ErrorMessage(kind), &kb)
}

func (r *Router) log(ctx context.Context) *zerolog.Logger {
	l := logging.From(ctx, r.logger)
	return &l
}

// send posts an HTML message. Failures are logged and counted; callers only
// look at the error when they need the sent message.
func (r *Router) send(ctx context.Context, chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	sent, err := r.sender.Send(msg)
	if err != nil {
		metrics.IncSendError()
		r.log(ctx).Warn().Err(err).Msg("failed to send message")
		return sent, fmt.Errorf("failed to send message: %w", err)
	}
	return sent, nil
}

func (r *Router) edit(ctx context.Context, chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	if _, err := r.sender.Send(msg); err != nil {
		metrics.IncSendError()
		r.log(ctx).Warn().Err(err).Int("message_id", messageID).Msg("failed to edit message")
	}
}

// answer stops the spinner on a pressed button. A non-empty alert is shown
// as a popup.
func (r *Router) answer(ctx context.Context, queryID, alert string) {
	cfg := tgbotapi.NewCallback(queryID, "")
	if alert != "" {
		cfg = tgbotapi.NewCallbackWithAlert(queryID, alert)
	}
	if _, err := r.sender.Request(cfg); err != nil {
		metrics.IncSendError()
		r.log(ctx).Warn().Err(err).Msg("failed to answer callback")
	}
}

func (r *Router) cityCoordinates(name string) (prayer.Coordinates, bool) {
	return prayer.LookupCity(strings.TrimSpace(name))
}
