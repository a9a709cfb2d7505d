package servos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/util"
)

// CmdOutput delegates pulse updates to an arbitrary executable.
// The %channel% and %pulse% placeholders in the configured arguments
// are replaced before each invocation.
type CmdOutput struct {
	Config   configuration.CmdOutputConfig
	channels int
}

func (o *CmdOutput) GetId() string {
	return "cmd"
}

func (o *CmdOutput) Init() error {
	return nil
}

func (o *CmdOutput) SetPulse(channel int, pulse int) error {
	if channel < 0 || channel >= o.channels {
		return fmt.Errorf("channel %d is out of range", channel)
	}

	timeout := 2 * time.Second
	exec := o.Config.Exec
	args := make([]string, 0, len(o.Config.Args))
	for _, arg := range o.Config.Args {
		replaced := strings.ReplaceAll(arg, "%channel%", strconv.Itoa(channel))
		replaced = strings.ReplaceAll(replaced, "%pulse%", strconv.Itoa(pulse))
		args = append(args, replaced)
	}

	_, err := util.SafeCmdExecution(exec, args, timeout)
	return err
}

func (o *CmdOutput) Channels() int {
	return o.channels
}

func (o *CmdOutput) Close() error {
	return nil
}
