package statistics

import (
	"github.com/markusressel/fin2go/internal/controller"
	"github.com/markusressel/fin2go/internal/waveform"
	"github.com/prometheus/client_golang/prometheus"
)

const gaitSubsystem = "gait"

type GaitCollector struct {
	finController controller.FinController

	phase           *prometheus.Desc
	mode            *prometheus.Desc
	command         *prometheus.Desc
	tickDurationAvg *prometheus.Desc
	tickDurationMax *prometheus.Desc
}

func NewGaitCollector(finController controller.FinController) *GaitCollector {
	return &GaitCollector{
		finController: finController,
		phase: prometheus.NewDesc(prometheus.BuildFQName(namespace, gaitSubsystem, "phase"),
			"Current phase clock value of the fin bank",
			[]string{"side"}, nil,
		),
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, gaitSubsystem, "mode"),
			"Waveform mode used in the most recent cycle, 1 for the active mode",
			[]string{"mode"}, nil,
		),
		command: prometheus.NewDesc(prometheus.BuildFQName(namespace, gaitSubsystem, "command"),
			"Axis values of the most recent locomotion command",
			[]string{"axis"}, nil,
		),
		tickDurationAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, gaitSubsystem, "tick_duration_milliseconds_avg"),
			"Average duration of a control cycle",
			nil, nil,
		),
		tickDurationMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, gaitSubsystem, "tick_duration_milliseconds_max"),
			"Worst duration of a control cycle within the statistics window",
			nil, nil,
		),
	}
}

func (collector *GaitCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.phase
	ch <- collector.mode
	ch <- collector.command
	ch <- collector.tickDurationAvg
	ch <- collector.tickDurationMax
}

// Collect implements required collect function for all prometheus collectors
func (collector *GaitCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.finController.Snapshot()

	ch <- prometheus.MustNewConstMetric(collector.phase, prometheus.GaugeValue, snapshot.Clock.Port, "port")
	ch <- prometheus.MustNewConstMetric(collector.phase, prometheus.GaugeValue, snapshot.Clock.Starboard, "starboard")

	for _, mode := range waveform.Modes() {
		active := 0.0
		if mode == snapshot.Mode {
			active = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, active, string(mode))
	}

	ch <- prometheus.MustNewConstMetric(collector.command, prometheus.GaugeValue, snapshot.Command.Surge, "surge")
	ch <- prometheus.MustNewConstMetric(collector.command, prometheus.GaugeValue, snapshot.Command.Sway, "sway")
	ch <- prometheus.MustNewConstMetric(collector.command, prometheus.GaugeValue, snapshot.Command.Pitch, "pitch")
	ch <- prometheus.MustNewConstMetric(collector.command, prometheus.GaugeValue, snapshot.Command.Yaw, "yaw")
	ch <- prometheus.MustNewConstMetric(collector.command, prometheus.GaugeValue, snapshot.Command.Amplitude, "amplitude")

	ch <- prometheus.MustNewConstMetric(collector.tickDurationAvg, prometheus.GaugeValue, collector.finController.TickDurationAvg())
	ch <- prometheus.MustNewConstMetric(collector.tickDurationMax, prometheus.GaugeValue, collector.finController.TickDurationMax())
}
