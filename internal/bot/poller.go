package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-bot/internal/format"
)

// API is the Telegram client the poller needs. *tgbotapi.BotAPI satisfies it.
type API interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller long-polls Telegram and fans updates out to a pool of workers.
type Poller struct {
	api       API
	router    *Router
	formatter *format.Formatter
	workers   int
	timeout   int
	logger    zerolog.Logger
}

// NewPoller creates a Poller. workers below one means one worker; timeout is
// the long-poll timeout in seconds.
func NewPoller(api API, router *Router, f *format.Formatter, workers, timeout int, logger zerolog.Logger) *Poller {
	if f == nil {
		f = format.Default
	}
	if workers <= 0 {
		workers = 1
	}
	return &Poller{
		api:       api,
		router:    router,
		formatter: f,
		workers:   workers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Setup drops updates queued while the bot was down and publishes the
// command menu.
func (p *Poller) Setup() error {
	if _, err := p.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("failed to drop pending updates: %w", err)
	}
	if _, err := p.api.Request(tgbotapi.NewSetMyCommands(commands(p.formatter)...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	return nil
}

// Run blocks until ctx is canceled or the update channel closes, then waits
// for in-flight updates to finish.
func (p *Poller) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	updates := p.api.GetUpdatesChan(u)

	jobs := make(chan tgbotapi.Update, p.workers*4)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for upd := range jobs {
				if err := p.router.Handle(ctx, upd); err != nil {
					p.logger.Warn().Err(err).Int("worker", id).Int("update_id", upd.UpdateID).Msg("update not handled")
				}
			}
		}(i)
	}

	p.logger.Info().Int("workers", p.workers).Msg("polling for updates")

	defer func() {
		close(jobs)
		wg.Wait()
		p.logger.Info().Msg("polling stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			select {
			case jobs <- upd:
			case <-ctx.Done():
			}
		}
	}
}
