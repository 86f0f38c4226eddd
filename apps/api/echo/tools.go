package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core/brand"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/financial"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/pitch"
)

// financial projections

type financialApi struct {
	validate *validator.Validate
}

func registerFinancialAPI(g *echo.Group, validate *validator.Validate) {
	api := financialApi{validate: validate}

	fg := g.Group("/financials")
	fg.GET("", api.retrieve)
	fg.POST("/revenues", api.addItem(financial.Revenue))
	fg.POST("/expenses", api.addItem(financial.Expense))
	fg.DELETE("/items/:id", api.removeItem)
	fg.POST("/save", api.save)
	fg.POST("/reset", api.reset)
}

func (api *financialApi) retrieve(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ws.Financial.State())
}

func (api *financialApi) addItem(kind financial.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data financial.NewLineItem
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewLineItem")
		}
		if err := data.Validate(api.validate); err != nil {
			return err
		}

		ws, err := getWorkspace(ctx)
		if err != nil {
			return err
		}
		var item financial.LineItem
		if kind == financial.Revenue {
			item = ws.Financial.AddRevenue(ctx.Request().Context(), data)
		} else {
			item = ws.Financial.AddExpense(ctx.Request().Context(), data)
		}
		return ctx.JSON(http.StatusCreated, item)
	}
}

func (api *financialApi) removeItem(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	if err = ws.Financial.RemoveItem(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *financialApi) save(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Financial.Save(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Financial.State())
}

func (api *financialApi) reset(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Financial.Reset(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Financial.State())
}

// pitch

type pitchApi struct {
	validate *validator.Validate
}

func registerPitchAPI(g *echo.Group, validate *validator.Validate) {
	api := pitchApi{validate: validate}

	pg := g.Group("/pitch")
	pg.GET("", api.retrieve)
	pg.PUT("", api.update)
	pg.POST("/save", api.save)
	pg.POST("/reset", api.reset)
}

func (api *pitchApi) retrieve(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ws.Pitch.State())
}

func (api *pitchApi) update(ctx echo.Context) error {
	var data pitch.UpdatePitch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePitch")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	if err = ws.Pitch.SetContent(ctx.Request().Context(), data.Content); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ws.Pitch.State())
}

func (api *pitchApi) save(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Pitch.Save(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Pitch.State())
}

func (api *pitchApi) reset(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Pitch.Reset(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Pitch.State())
}

// brand identity

type brandApi struct {
	validate *validator.Validate
}

func registerBrandAPI(g *echo.Group, validate *validator.Validate) {
	api := brandApi{validate: validate}

	bg := g.Group("/brand")
	bg.GET("", api.retrieve)
	bg.PUT("", api.update)
}

func (api *brandApi) retrieve(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	id, err := ws.Brand(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting brand identity")
	}
	return ctx.JSON(http.StatusOK, id)
}

func (api *brandApi) update(ctx echo.Context) error {
	var data brand.Identity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Identity")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	if err = ws.SetBrand(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "saving brand identity")
	}
	return ctx.JSON(http.StatusOK, data)
}
