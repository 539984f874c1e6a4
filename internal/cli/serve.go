package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-bot/internal/bot"
	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/logging"
	"github.com/smokyabdulrahman/prayer-bot/internal/metrics"
	"github.com/smokyabdulrahman/prayer-bot/internal/ops"
	"github.com/smokyabdulrahman/prayer-bot/internal/tz"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Long:  "Long-poll Telegram for updates and answer them until SIGINT or SIGTERM.\nThe health and metrics server listens on ops.addr unless it is empty.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	if err := cfg.RequireToken(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)

	metrics.MustRegister()
	metrics.SetBuildInfo(buildVersion)

	tg, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	tg.Debug = cfg.Bot.Debug

	formatter := format.New(format.WithLocation(loc))
	opts := []bot.Option{bot.WithLogger(logger)}
	if cfg.Display.LocateTimezone {
		locator, err := tz.NewLocator()
		if err != nil {
			logger.Warn().Err(err).Msg("timezone lookup disabled")
		} else {
			opts = append(opts, bot.WithZoneLocator(locator))
		}
	}

	router := bot.NewRouter(tg, newClient(cfg, logger), formatter, opts...)
	poller := bot.NewPoller(tg, router, formatter, cfg.Bot.Workers, cfg.Bot.PollTimeout, logger)
	if err := poller.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Ops.Addr != "" {
		srv := ops.NewServer(cfg.Ops.Addr, nil, logger)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("ops server shutdown failed")
			}
		}()
	}

	logger.Info().
		Str("bot", tg.Self.UserName).
		Str("version", buildVersion).
		Int("method", cfg.AlAdhan.Method).
		Str("timezone", loc.String()).
		Msg("bot started")

	if err := poller.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("bot stopped")
	return nil
}
