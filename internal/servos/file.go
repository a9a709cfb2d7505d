package servos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/util"
)

// FileOutput mirrors every channel into a pwm<channel> file below a
// directory. Useful for development and testing without hardware.
type FileOutput struct {
	Config   configuration.FileOutputConfig
	channels int
}

func (o *FileOutput) GetId() string {
	return "file"
}

func (o *FileOutput) Init() error {
	return os.MkdirAll(o.Config.Path, 0o755)
}

func (o *FileOutput) SetPulse(channel int, pulse int) error {
	if channel < 0 || channel >= o.channels {
		return fmt.Errorf("channel %d is out of range", channel)
	}
	return util.WriteIntToFileAtomic(pulse, o.channelPath(channel))
}

// GetPulse reads the pulse last written to a channel file.
func (o *FileOutput) GetPulse(channel int) (int, error) {
	return util.ReadIntFromFile(o.channelPath(channel))
}

func (o *FileOutput) channelPath(channel int) string {
	return filepath.Join(o.Config.Path, fmt.Sprintf("pwm%d", channel))
}

func (o *FileOutput) Channels() int {
	return o.channels
}

func (o *FileOutput) Close() error {
	return nil
}
