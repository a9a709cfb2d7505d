package command

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
)

// FileSource reads the command from a JSON file on every poll, f.ex.
//
//	{"surge": 0.5, "sway": 0, "pitch": 0, "yaw": 0, "amplitude": 1}
//
// Axes missing from the file stay at zero.
type FileSource struct {
	Config configuration.CommandSourceConfig `json:"configuration"`
}

func (source FileSource) GetId() string {
	return source.Config.ID
}

func (source FileSource) GetConfig() configuration.CommandSourceConfig {
	return source.Config
}

func (source FileSource) Get() (gait.Command, error) {
	filePath := source.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return gait.Command{}, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return gait.Command{}, fmt.Errorf("command source %s: %s", source.GetId(), err.Error())
	}

	command := gait.Command{}
	if err := json.Unmarshal(data, &command); err != nil {
		return gait.Command{}, fmt.Errorf("command source %s: %s", source.GetId(), err.Error())
	}

	return command, nil
}
