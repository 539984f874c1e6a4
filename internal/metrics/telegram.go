package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesTotal,
		telegramSendErrorsTotal,
	)
}

var (
	telegramUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prayer_bot_telegram_updates_total",
			Help: "Incoming updates by route (command, button, location, callback).",
		},
		[]string{"route"},
	)

	telegramSendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prayer_bot_telegram_send_errors_total",
			Help: "Total number of failed Telegram API calls.",
		},
	)
)

func IncUpdate(route string) {
	telegramUpdatesTotal.WithLabelValues(norm(route)).Inc()
}

func IncSendError() {
	telegramSendErrorsTotal.Inc()
}
