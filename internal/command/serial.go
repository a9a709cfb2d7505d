package command

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/ui"
	"go.bug.st/serial"
)

const DefaultBaudRate = 115200

// SerialSource reads commands from a serial line, one command per
// text line:
//
//	<surge> <sway> <pitch> <yaw> <amplitude>
//
// Values are separated by whitespace or commas, lines starting with
// '#' are ignored. The latest complete line wins, malformed lines are
// skipped. A lost link is reopened automatically.
type SerialSource struct {
	Config configuration.CommandSourceConfig `json:"configuration"`

	mu   sync.Mutex
	last gait.Command
	port serial.Port
}

func (source *SerialSource) GetId() string {
	return source.Config.ID
}

func (source *SerialSource) GetConfig() configuration.CommandSourceConfig {
	return source.Config
}

func (source *SerialSource) Get() (gait.Command, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.last, nil
}

// Monitor pumps the serial line until ctx is cancelled, reopening the
// port after link errors.
func (source *SerialSource) Monitor(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		source.closePort()
	}()

	for {
		err := source.readLoop()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			ui.Warning("Command source %s: serial link lost: %v", source.GetId(), err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(1 * time.Second):
		}
	}
}

func (source *SerialSource) readLoop() error {
	mode := &serial.Mode{
		BaudRate: source.baudRate(),
	}
	port, err := serial.Open(source.Config.Serial.Port, mode)
	if err != nil {
		return err
	}
	source.setPort(port)
	defer source.closePort()

	ui.Debug("Command source %s: listening on %s", source.GetId(), source.Config.Serial.Port)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		command, err := parseLine(line)
		if err != nil {
			ui.Warning("Command source %s: ignoring malformed line: %v", source.GetId(), err)
			continue
		}

		source.setLast(command)
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("serial stream closed")
}

// parseLine converts a single serial text line into a command.
func parseLine(line string) (gait.Command, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 5 {
		return gait.Command{}, fmt.Errorf("expected 5 values, got %d", len(fields))
	}

	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return gait.Command{}, fmt.Errorf("invalid value '%s'", field)
		}
		values[i] = value
	}

	return gait.Command{
		Surge:     values[0],
		Sway:      values[1],
		Pitch:     values[2],
		Yaw:       values[3],
		Amplitude: values[4],
	}, nil
}

func (source *SerialSource) baudRate() int {
	if source.Config.Serial.BaudRate <= 0 {
		return DefaultBaudRate
	}
	return source.Config.Serial.BaudRate
}

func (source *SerialSource) setLast(command gait.Command) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.last = command
}

func (source *SerialSource) setPort(port serial.Port) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.port = port
}

func (source *SerialSource) closePort() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.port != nil {
		_ = source.port.Close()
		source.port = nil
	}
}
