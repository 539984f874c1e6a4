package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(providerRequestsTotal.WithLabelValues("timings", "ok"))

	ObserveProviderRequest("Timings", " OK ", 120*time.Millisecond)

	after := testutil.ToFloat64(providerRequestsTotal.WithLabelValues("timings", "ok"))
	if after-before != 1 {
		t.Errorf("provider counter delta = %v, want 1", after-before)
	}
}

func TestIncUpdate(t *testing.T) {
	before := testutil.ToFloat64(telegramUpdatesTotal.WithLabelValues("location"))
	IncUpdate("location")
	IncUpdate("Location")
	after := testutil.ToFloat64(telegramUpdatesTotal.WithLabelValues("location"))
	if after-before != 2 {
		t.Errorf("updates counter delta = %v, want 2", after-before)
	}
}

func TestIncSendError(t *testing.T) {
	before := testutil.ToFloat64(telegramSendErrorsTotal)
	IncSendError()
	if got := testutil.ToFloat64(telegramSendErrorsTotal) - before; got != 1 {
		t.Errorf("send errors delta = %v, want 1", got)
	}
}

func TestSetBuildInfo(t *testing.T) {
	SetBuildInfo("v1.2.3")
	if got := testutil.ToFloat64(buildInfo.WithLabelValues("v1.2.3")); got != 1 {
		t.Errorf("build_info = %v, want 1", got)
	}
}

func TestMustRegister_Idempotent(t *testing.T) {
	MustRegister()
	MustRegister()
}

func TestRegisterAll_CustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := registerAll(reg); err != nil {
		t.Fatalf("registerAll: %v", err)
	}

	SetBuildInfo("v-test")
	IncUpdate("start")
	ObserveProviderRequest("calendar", "ok", time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	got := make(map[string]bool, len(families))
	for _, mf := range families {
		got[mf.GetName()] = true
	}
	for _, name := range []string{
		"prayer_bot_build_info",
		"prayer_bot_telegram_updates_total",
		"prayer_bot_provider_requests_total",
		"prayer_bot_provider_request_duration_seconds",
	} {
		if !got[name] {
			t.Errorf("registry missing %s", name)
		}
	}

	if err := registerAll(reg); err == nil {
		t.Error("second registerAll on the same registry should fail")
	}
}
