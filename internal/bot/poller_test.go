package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-bot/internal/format"
)

type fakeAPI struct {
	fakeSender
	updates    chan tgbotapi.Update
	timeout    int
	stopped    chan struct{}
	requestErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		updates: make(chan tgbotapi.Update),
		stopped: make(chan struct{}),
	}
}

func (a *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	a.timeout = config.Timeout
	return a.updates
}

func (a *fakeAPI) StopReceivingUpdates() {
	close(a.stopped)
}

func (a *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if a.requestErr != nil {
		return nil, a.requestErr
	}
	return a.fakeSender.Request(c)
}

func newTestPoller(t *testing.T, a *fakeAPI, workers int) *Poller {
	t.Helper()
	f := testFormatter(t, saturday(t))
	r := NewRouter(a, &fakeProvider{}, f)
	return NewPoller(a, r, f, workers, 30, zerolog.Nop())
}

func TestPoller_Setup(t *testing.T) {
	a := newFakeAPI()
	p := newTestPoller(t, a, 1)

	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if len(a.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(a.requests))
	}

	del, ok := a.requests[0].(tgbotapi.DeleteWebhookConfig)
	if !ok || !del.DropPendingUpdates {
		t.Errorf("first request = %+v, want webhook deletion dropping pending updates", a.requests[0])
	}
	cmds, ok := a.requests[1].(tgbotapi.SetMyCommandsConfig)
	if !ok {
		t.Fatalf("second request = %T, want SetMyCommandsConfig", a.requests[1])
	}
	if len(cmds.Commands) != 5 {
		t.Errorf("commands = %d, want 5", len(cmds.Commands))
	}
}

func TestPoller_SetupError(t *testing.T) {
	a := newFakeAPI()
	a.requestErr = errors.New("unauthorized")
	p := newTestPoller(t, a, 1)

	if err := p.Setup(); err == nil {
		t.Fatal("expected error")
	}
}

func TestPoller_RunHandlesUntilChannelCloses(t *testing.T) {
	a := newFakeAPI()
	p := newTestPoller(t, a, 3)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	const n = 5
	for i := 0; i < n; i++ {
		upd := commandUpdate("/start")
		upd.UpdateID = i + 1
		a.updates <- upd
	}
	close(a.updates)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the update channel closed")
	}

	if got := len(a.messages()); got != n {
		t.Errorf("sent %d messages, want %d", got, n)
	}
	if a.timeout != 30 {
		t.Errorf("poll timeout = %d, want 30", a.timeout)
	}
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	a := newFakeAPI()
	p := newTestPoller(t, a, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	a.updates <- commandUpdate("/help")
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case <-a.stopped:
	default:
		t.Error("polling was not stopped")
	}
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(newFakeAPI(), nil, nil, 0, 60, zerolog.Nop())

	if p.workers != 1 {
		t.Errorf("workers = %d, want 1", p.workers)
	}
	if p.formatter != format.Default {
		t.Error("nil formatter should mean format.Default")
	}
}
