package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fin2go/internal/gait"
)

// ServoState describes one output channel and the fin ray it drives.
type ServoState struct {
	Channel int     `json:"channel"`
	Side    string  `json:"side"`
	Ray     int     `json:"ray"`
	Neutral float64 `json:"neutral"`
	Angle   float64 `json:"angle"`
	Pulse   int     `json:"pulse"`
}

func registerServoEndpoints(rest *echo.Echo, mapper *gait.Mapper, limiter *gait.RateLimiter) {
	group := rest.Group("/servo")

	group.GET("/", getServos(mapper, limiter))
	group.GET("/:"+urlParamId+"/", getServo(mapper, limiter))
}

// returns the state of all servo channels, port bank first
func getServos(mapper *gait.Mapper, limiter *gait.RateLimiter) echo.HandlerFunc {
	return func(c echo.Context) error {
		pulses := mapper.LastPulses()

		states := make([]ServoState, 0, 2*mapper.RaysPerSide())
		for _, side := range []gait.Side{gait.SidePort, gait.SideStarboard} {
			for ray := 0; ray < mapper.RaysPerSide(); ray++ {
				states = append(states, servoState(mapper, limiter, pulses, side, ray))
			}
		}
		return c.JSONPretty(http.StatusOK, states, indentationChar)
	}
}

func getServo(mapper *gait.Mapper, limiter *gait.RateLimiter) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(urlParamId)

		channel, err := strconv.Atoi(id)
		if err != nil || channel < 0 || channel >= 2*mapper.RaysPerSide() {
			return returnNotFound(c, id)
		}

		side := gait.SidePort
		if channel >= mapper.RaysPerSide() {
			side = gait.SideStarboard
		}
		ray := channel % mapper.RaysPerSide()

		return c.JSONPretty(http.StatusOK, servoState(mapper, limiter, mapper.LastPulses(), side, ray), indentationChar)
	}
}

func servoState(mapper *gait.Mapper, limiter *gait.RateLimiter, pulses map[int]int, side gait.Side, ray int) ServoState {
	channel := mapper.Channel(side, ray)
	return ServoState{
		Channel: channel,
		Side:    side.String(),
		Ray:     ray,
		Neutral: mapper.Neutral(side, ray),
		Angle:   limiter.Last(side, ray),
		Pulse:   pulses[channel],
	}
}
