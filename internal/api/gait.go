package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fin2go/internal/controller"
)

func registerGaitEndpoints(rest *echo.Echo, finController controller.FinController) {
	group := rest.Group("/gait")

	group.GET("/", getGait(finController))
}

// returns the gait state after the most recent control cycle
func getGait(finController controller.FinController) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, finController.Snapshot(), indentationChar)
	}
}
