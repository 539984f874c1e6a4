package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(buildInfo)
}

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "prayer_bot_build_info",
		Help: "A constant metric with the running version as a label.",
	},
	[]string{"version"},
)

func SetBuildInfo(version string) {
	buildInfo.WithLabelValues(version).Set(1)
}
