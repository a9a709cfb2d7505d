package statistics

import (
	"strconv"

	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const servoSubsystem = "servo"

type ServoCollector struct {
	mapper  *gait.Mapper
	limiter *gait.RateLimiter

	pulse       *prometheus.Desc
	angle       *prometheus.Desc
	saturations *prometheus.Desc
}

func NewServoCollector(mapper *gait.Mapper, limiter *gait.RateLimiter) *ServoCollector {
	return &ServoCollector{
		mapper:  mapper,
		limiter: limiter,
		pulse: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "pulse"),
			"Pulse width most recently commanded on the output channel",
			[]string{"channel"}, nil,
		),
		angle: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "angle"),
			"Angle most recently commanded for the fin ray, in degrees",
			[]string{"side", "ray"}, nil,
		),
		saturations: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "rate_limit_saturations"),
			"Counter for proposed angles that exceeded the per-cycle angle delta bound",
			nil, nil,
		),
	}
}

func (collector *ServoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pulse
	ch <- collector.angle
	ch <- collector.saturations
}

// Collect implements required collect function for all prometheus collectors
func (collector *ServoCollector) Collect(ch chan<- prometheus.Metric) {
	pulses := collector.mapper.LastPulses()
	for _, channel := range util.SortedKeys(pulses) {
		ch <- prometheus.MustNewConstMetric(collector.pulse, prometheus.GaugeValue, float64(pulses[channel]), strconv.Itoa(channel))
	}

	for _, side := range []gait.Side{gait.SidePort, gait.SideStarboard} {
		for ray := 0; ray < collector.mapper.RaysPerSide(); ray++ {
			angle := collector.limiter.Last(side, ray)
			ch <- prometheus.MustNewConstMetric(collector.angle, prometheus.GaugeValue, angle, side.String(), strconv.Itoa(ray))
		}
	}

	ch <- prometheus.MustNewConstMetric(collector.saturations, prometheus.CounterValue, float64(collector.limiter.Saturations()))
}
