package servos

import (
	"path/filepath"
	"testing"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestFileOutput_GetId(t *testing.T) {
	// GIVEN
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: "/path/to/outputs",
		},
	}
	output, err := NewPwmOutput(config, 10)
	assert.NoError(t, err)

	// WHEN
	result := output.GetId()

	// THEN
	assert.Equal(t, "file", result)
}

func TestFileOutput_Init_CreatesDirectory(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "outputs")
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: path,
		},
	}
	output, err := NewPwmOutput(config, 10)
	assert.NoError(t, err)

	// WHEN
	err = output.Init()

	// THEN
	assert.NoError(t, err)
	assert.DirExists(t, path)
}

func TestFileOutput_SetPulse(t *testing.T) {
	// GIVEN
	path := t.TempDir()
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: path,
		},
	}
	output, err := NewPwmOutput(config, 10)
	assert.NoError(t, err)
	assert.NoError(t, output.Init())

	// WHEN
	err = output.SetPulse(3, 375)

	// THEN
	assert.NoError(t, err)
	assert.FileExists(t, filepath.Join(path, "pwm3"))

	fileOutput := output.(*FileOutput)
	pulse, err := fileOutput.GetPulse(3)
	assert.NoError(t, err)
	assert.Equal(t, 375, pulse)
}

func TestFileOutput_SetPulse_OverwritesPreviousValue(t *testing.T) {
	// GIVEN
	path := t.TempDir()
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: path,
		},
	}
	output, err := NewPwmOutput(config, 10)
	assert.NoError(t, err)
	assert.NoError(t, output.Init())
	assert.NoError(t, output.SetPulse(0, 150))

	// WHEN
	err = output.SetPulse(0, 600)

	// THEN
	assert.NoError(t, err)

	fileOutput := output.(*FileOutput)
	pulse, err := fileOutput.GetPulse(0)
	assert.NoError(t, err)
	assert.Equal(t, 600, pulse)
}

func TestFileOutput_SetPulse_ChannelOutOfRange(t *testing.T) {
	// GIVEN
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: t.TempDir(),
		},
	}
	output, err := NewPwmOutput(config, 10)
	assert.NoError(t, err)

	// WHEN
	err = output.SetPulse(10, 375)

	// THEN
	assert.EqualError(t, err, "channel 10 is out of range")
}

func TestFileOutput_Channels(t *testing.T) {
	// GIVEN
	config := configuration.OutputConfig{
		File: &configuration.FileOutputConfig{
			Path: "/path/to/outputs",
		},
	}
	output, err := NewPwmOutput(config, 8)
	assert.NoError(t, err)

	// WHEN
	result := output.Channels()

	// THEN
	assert.Equal(t, 8, result)
}
