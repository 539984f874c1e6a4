package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

// Callback data.
const (
	cbCityPrefix = "city:"
	cbWeekPrefix = "week:"
	cbTimeToday  = "time:today"
	cbTimeWeek   = "time:week"
	cbTimeMonth  = "time:month"
	cbBackToMenu = "back_to_menu"
)

// citiesPerRow is the number of city buttons on one keyboard row.
const citiesPerRow = 2

func mainMenuKeyboard(f *format.Formatter) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(f.Text("btn_share_location")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(f.Text("btn_choose_city")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(f.Text("btn_today")),
			tgbotapi.NewKeyboardButton(f.Text("btn_week")),
		),
	)
	kb.InputFieldPlaceholder = f.Text("placeholder_menu")
	return kb
}

func locationRequestKeyboard(f *format.Formatter) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(f.Text("btn_send_location")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(f.Text("btn_city_instead")),
		),
	)
	kb.OneTimeKeyboard = true
	kb.InputFieldPlaceholder = f.Text("placeholder_location")
	return kb
}

// citiesKeyboard lists the known cities alphabetically, two per row, with a
// back button at the bottom. prefix selects the view a tap opens.
func citiesKeyboard(f *format.Formatter, prefix string) tgbotapi.InlineKeyboardMarkup {
	names := prayer.CityNames()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(names)/citiesPerRow+2)

	var row []tgbotapi.InlineKeyboardButton
	for _, name := range names {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📍 "+name, prefix+name))
		if len(row) == citiesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_back_to_menu"), cbBackToMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func timeOptionsKeyboard(f *format.Formatter) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_today"), cbTimeToday),
			tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_week"), cbTimeWeek),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_month"), cbTimeMonth),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_back"), cbBackToMenu),
		),
	)
}

func returnToMenuKeyboard(f *format.Formatter) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.Text("btn_return_to_menu"), cbBackToMenu),
		),
	)
}

// commands is the menu Telegram shows next to the input field.
func commands(f *format.Formatter) []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: f.Text("cmd_start")},
		{Command: "today", Description: f.Text("cmd_today")},
		{Command: "week", Description: f.Text("cmd_week")},
		{Command: "cities", Description: f.Text("cmd_cities")},
		{Command: "help", Description: f.Text("cmd_help")},
	}
}
