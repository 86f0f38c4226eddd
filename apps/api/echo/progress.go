package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func registerProgressAPI(g *echo.Group) {
	g.GET("/progress", progressRetrieve)
}

func progressRetrieve(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	report, err := ws.Progress(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "aggregating progress")
	}
	return ctx.JSON(http.StatusOK, report)
}
