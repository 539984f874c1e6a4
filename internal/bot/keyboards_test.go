package bot

import (
	"testing"

	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

func TestMainMenuKeyboard(t *testing.T) {
	kb := mainMenuKeyboard(format.Default)

	if len(kb.Keyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(kb.Keyboard))
	}
	share := kb.Keyboard[0][0]
	if share.Text != "📍 Поделиться местоположением" || !share.RequestLocation {
		t.Errorf("first button = %+v, want location request", share)
	}
	if got := kb.Keyboard[1][0].Text; got != "🏙️ Выбрать город" {
		t.Errorf("city button = %q", got)
	}
	if got := kb.Keyboard[2][0].Text + "|" + kb.Keyboard[2][1].Text; got != "📅 На сегодня|📆 На неделю" {
		t.Errorf("last row = %q", got)
	}
	if !kb.ResizeKeyboard || kb.OneTimeKeyboard {
		t.Errorf("resize=%v one_time=%v, want persistent resized keyboard", kb.ResizeKeyboard, kb.OneTimeKeyboard)
	}
	if kb.InputFieldPlaceholder != "Выберите действие..." {
		t.Errorf("placeholder = %q", kb.InputFieldPlaceholder)
	}
}

func TestLocationRequestKeyboard(t *testing.T) {
	kb := locationRequestKeyboard(format.Default)

	if len(kb.Keyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.Keyboard))
	}
	if b := kb.Keyboard[0][0]; b.Text != "📍 Отправить местоположение" || !b.RequestLocation {
		t.Errorf("first button = %+v", b)
	}
	if got := kb.Keyboard[1][0].Text; got != "🏙️ Выбрать город вместо этого" {
		t.Errorf("second button = %q", got)
	}
	if !kb.OneTimeKeyboard {
		t.Error("location keyboard should hide after use")
	}
}

func TestCitiesKeyboard(t *testing.T) {
	names := prayer.CityNames()

	for _, prefix := range []string{cbCityPrefix, cbWeekPrefix} {
		t.Run(prefix, func(t *testing.T) {
			kb := citiesKeyboard(format.Default, prefix)

			// Ten cities in rows of two plus the back row.
			if len(kb.InlineKeyboard) != 6 {
				t.Fatalf("rows = %d, want 6", len(kb.InlineKeyboard))
			}
			for i, row := range kb.InlineKeyboard[:5] {
				if len(row) != 2 {
					t.Errorf("row %d has %d buttons, want 2", i, len(row))
				}
			}

			data := inlineData(kb)
			if len(data) != len(names)+1 {
				t.Fatalf("buttons = %d, want %d", len(data), len(names)+1)
			}
			for i, name := range names {
				if data[i] != prefix+name {
					t.Errorf("button %d data = %q, want %q", i, data[i], prefix+name)
				}
				if len(data[i]) > 64 {
					t.Errorf("callback data %q exceeds 64 bytes", data[i])
				}
			}
			if data[len(data)-1] != cbBackToMenu {
				t.Errorf("last button = %q, want %q", data[len(data)-1], cbBackToMenu)
			}

			first := kb.InlineKeyboard[0][0]
			if first.Text != "📍 "+names[0] {
				t.Errorf("label = %q, want %q", first.Text, "📍 "+names[0])
			}
			back := kb.InlineKeyboard[5][0]
			if back.Text != "◀️ Назад в меню" {
				t.Errorf("back label = %q", back.Text)
			}
		})
	}
}

func TestTimeOptionsKeyboard(t *testing.T) {
	kb := timeOptionsKeyboard(format.Default)

	want := []string{cbTimeToday, cbTimeWeek, cbTimeMonth, cbBackToMenu}
	got := inlineData(kb)
	if len(got) != len(want) {
		t.Fatalf("buttons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("button %d = %q, want %q", i, got[i], want[i])
		}
	}
	if label := kb.InlineKeyboard[1][0].Text; label != "📖 На месяц" {
		t.Errorf("month label = %q", label)
	}
}

func TestReturnToMenuKeyboard(t *testing.T) {
	kb := returnToMenuKeyboard(format.Default)

	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 1 {
		t.Fatalf("keyboard = %+v, want one button", kb.InlineKeyboard)
	}
	b := kb.InlineKeyboard[0][0]
	if b.Text != "◀️ Вернуться в меню" || b.CallbackData == nil || *b.CallbackData != cbBackToMenu {
		t.Errorf("button = %+v", b)
	}
}

func TestCommands(t *testing.T) {
	cmds := commands(format.Default)

	want := []string{"start", "today", "week", "cities", "help"}
	if len(cmds) != len(want) {
		t.Fatalf("commands = %d, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.Command != want[i] {
			t.Errorf("command %d = %q, want %q", i, c.Command, want[i])
		}
		if c.Description == "" || c.Description == "cmd_"+c.Command {
			t.Errorf("command %q has no description", c.Command)
		}
	}
}
