package command

import (
	"sync"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
)

// ApiSource holds the command most recently pushed through the REST
// api. It returns the zero command until the first push.
type ApiSource struct {
	Config configuration.CommandSourceConfig `json:"configuration"`

	mu   sync.Mutex
	last gait.Command
}

func (source *ApiSource) GetId() string {
	return source.Config.ID
}

func (source *ApiSource) GetConfig() configuration.CommandSourceConfig {
	return source.Config
}

func (source *ApiSource) Get() (gait.Command, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.last, nil
}

func (source *ApiSource) Push(command gait.Command) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.last = command
}
