package internal

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/fin2go/internal/api"
	"github.com/markusressel/fin2go/internal/command"
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/controller"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/persistence"
	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/statistics"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/markusressel/fin2go/internal/waveform"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	if configuration.CurrentConfig.Output.Pca9685 != nil && getProcessOwner() != "root" {
		ui.Fatal("Driving servos over i2c requires root permissions, please run fin2go as root")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Unable to prepare persistence directory: %v", err)
	}

	output, finController, mapper, limiter := InitializeObjects(pers)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addr := fmt.Sprintf(":%d", port)
			server := &http.Server{Addr: addr, Handler: promhttp.Handler()}

			g.Add(func() error {
				ui.Info("Starting statistics server at %s...", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Profiling.Enabled
		if enabled {
			// === pprof endpoint
			profilingConfig := configuration.CurrentConfig.Profiling
			addr := fmt.Sprintf("%s:%d", profilingConfig.Host, profilingConfig.Port)
			server := &http.Server{Addr: addr}

			g.Add(func() error {
				ui.Info("Starting profiling server at %s...", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start profiling endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping profiling server: " + err.Error())
				} else {
					ui.Info("Profiling server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST Api
			echoRest := api.CreateRestService(finController, mapper, limiter)
			addr := fmt.Sprintf("%s:%d", configuration.CurrentConfig.Api.Host, configuration.CurrentConfig.Api.Port)

			g.Add(func() error {
				ui.Info("Starting rest api at %s...", addr)
				if err := echoRest.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start rest api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := echoRest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping rest api: " + err.Error())
				} else {
					ui.Info("Rest api stopped.")
				}
			})
		}
	}
	{
		// === command source monitors
		for _, source := range command.SourceMap.Items() {
			monitored, ok := source.(command.MonitoredSource)
			if !ok {
				continue
			}
			m := monitored

			g.Add(func() error {
				err := m.Monitor(ctx)
				ui.Info("Monitor for command source %s stopped.", m.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error monitoring command source: %v", err)
				}
			})
		}
	}
	{
		// === fin controller
		g.Add(func() error {
			err := finController.Run(ctx)
			ui.Info("Fin controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, os.Kill)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	err := g.Run()
	if closeErr := output.Close(); closeErr != nil {
		ui.Warning("Error closing servo output: %v", closeErr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds the actuation chain and the command sources
// from the current configuration and registers the metrics collectors.
func InitializeObjects(pers persistence.Persistence) (servos.PwmOutput, controller.FinController, *gait.Mapper, *gait.RateLimiter) {
	config := configuration.CurrentConfig

	raysPerSide := config.Servos.CountPerSide
	output, err := servos.NewPwmOutput(config.Output, 2*raysPerSide)
	if err != nil {
		ui.Fatal("Unable to process output configuration: %v", err)
	}
	if err := output.Init(); err != nil {
		ui.Fatal("Unable to initialize %s output: %v", output.GetId(), err)
	}

	registry := waveform.NewRegistry(raysPerSide, config.Gait.MaxDeflection)
	limiter := gait.NewRateLimiter(raysPerSide, config.Gait.MaxAngleDelta)
	mapper := gait.NewMapper(gait.MapperParams{
		RaysPerSide:       raysPerSide,
		NeutralsPort:      loadNeutrals(pers, gait.SidePort, config.Servos.Neutrals.Port, raysPerSide),
		NeutralsStarboard: loadNeutrals(pers, gait.SideStarboard, config.Servos.Neutrals.Starboard, raysPerSide),
		MinPulse:          config.Servos.MinPulse,
		MaxPulse:          config.Servos.MaxPulse,
	}, registry, limiter, output)

	gaitController := gait.NewController(gait.Params{
		MaxTimeIncrement: config.Gait.MaxTimeIncrement,
		Wavelength:       config.Gait.Wavelength,
		SettleWavelength: config.Gait.SettleWavelength,
	}, mapper)

	for _, sourceConfig := range config.Command.Sources {
		source, err := command.NewSource(sourceConfig)
		if err != nil {
			ui.Fatal("Unable to process command source configuration: %s", sourceConfig.ID)
		}
		command.SourceMap.Set(sourceConfig.ID, source)
	}

	activeSource, exists := command.SourceMap.Get(config.Command.Active)
	if !exists {
		ui.Fatal("No command source definition with id '%s' found, exiting.", config.Command.Active)
	}

	finController := controller.NewFinController(
		gaitController,
		activeSource,
		config.TickRate,
		config.SettleTicks,
		config.SettleDelay,
	)

	statistics.Register(statistics.NewGaitCollector(finController))
	statistics.Register(statistics.NewServoCollector(mapper, limiter))

	return output, finController, mapper, limiter
}

// loadNeutrals merges the neutral trim saved by the servo cli over the
// configured neutral angles. Saved trim replaces the configured value,
// a missing or mismatching trim record leaves the configuration as is.
func loadNeutrals(pers persistence.Persistence, side gait.Side, configured []float64, raysPerSide int) []float64 {
	neutrals := make([]float64, raysPerSide)
	copy(neutrals, configured)

	saved, err := pers.LoadNeutrals(side)
	if err != nil {
		return neutrals
	}
	if len(saved) != raysPerSide {
		ui.Warning("Ignoring saved %s neutral trim, expected %d entries but found %d", side, raysPerSide, len(saved))
		return neutrals
	}
	return saved
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
