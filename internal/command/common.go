package command

import (
	"context"
	"fmt"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SourceMap = cmap.New[Source]()
)

// Source produces locomotion commands with latest-value semantics: Get
// returns the most recent command known to the source, the zero command
// until data arrived.
type Source interface {
	GetId() string

	GetConfig() configuration.CommandSourceConfig

	// Get returns the most recent locomotion command of this source
	Get() (gait.Command, error)
}

// MonitoredSource is implemented by sources that need a background
// reader pumping data while the daemon runs.
type MonitoredSource interface {
	Source

	// Monitor blocks and feeds the source until ctx is cancelled.
	Monitor(ctx context.Context) error
}

// PushSource is implemented by sources that accept commands pushed
// from an external transport instead of polling one.
type PushSource interface {
	Source

	Push(command gait.Command)
}

func NewSource(config configuration.CommandSourceConfig) (Source, error) {
	if config.Static != nil {
		return &StaticSource{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSource{
			Config: config,
		}, nil
	}

	if config.Serial != nil {
		return &SerialSource{
			Config: config,
		}, nil
	}

	if config.Api != nil {
		return &ApiSource{
			Config: config,
		}, nil
	}

	if config.Shape != nil {
		return &ShapeSource{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching source type for command source: %s", config.ID)
}
