package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fin2go/internal/command"
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/qdm12/reprint"
)

func registerCommandEndpoints(rest *echo.Echo) {
	group := rest.Group("/command")

	group.GET("/", getCommandSources)
	group.GET("/:"+urlParamId+"/", getCommandSource)
	group.POST("/", pushCommand)
}

// returns the configurations of all currently known command sources
func getCommandSources(c echo.Context) error {
	configs := map[string]configuration.CommandSourceConfig{}
	for id, source := range command.SourceMap.Items() {
		configs[id] = source.GetConfig()
	}
	data := reprint.This(configs)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getCommandSource(c echo.Context) error {
	id := c.Param(urlParamId)

	source, exists := command.SourceMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	data := reprint.This(source.GetConfig())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// pushCommand feeds a locomotion command into the active command
// source. Only sources that take pushed input accept it, polling
// sources answer with a conflict.
func pushCommand(c echo.Context) error {
	active := configuration.CurrentConfig.Command.Active
	source, exists := command.SourceMap.Get(active)
	if !exists {
		return returnNotFound(c, active)
	}

	pushSource, ok := source.(command.PushSource)
	if !ok {
		return c.JSONPretty(http.StatusConflict, &Result{
			Name:    "Conflict",
			Message: "Active command source '" + active + "' does not accept pushed commands",
		}, indentationChar)
	}

	cmd := gait.Command{}
	if err := c.Bind(&cmd); err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Bad Request",
			Message: err.Error(),
		}, indentationChar)
	}

	pushSource.Push(cmd)
	return c.JSONPretty(http.StatusOK, cmd, indentationChar)
}
