package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
)

type (
	AddComponentRequest struct {
		Type string `json:"type" validate:"required,celltype"`
	}

	UpdateComponentsRequest struct {
		Components  []canvas.Component `json:"components" validate:"dive"`
		Suggestions []string           `json:"suggestions"` // absent keeps the current suggestions
	}

	EditComponentRequest struct {
		Content string `json:"content" validate:"max=500"`
	}

	RelocateRequest struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}

	RelocateResponse struct {
		Applied   bool             `json:"applied"`
		Component canvas.Component `json:"component"`
	}

	SuggestionsResponse struct {
		Suggestions []string `json:"suggestions"`
	}
)

func (r *UpdateComponentsRequest) Validate(validate *validator.Validate) error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	seen := make(map[string]bool, len(r.Components))
	for _, comp := range r.Components {
		if seen[comp.ID] {
			return core.NewValidationError(canvas.ErrDuplicateID, core.FieldError{
				Field: "components",
				Error: canvas.ErrDuplicateID.Error(),
			})
		}
		seen[comp.ID] = true
	}
	return nil
}

type canvasApi struct {
	advisor  canvas.Advisor
	validate *validator.Validate
}

func registerCanvasAPI(g *echo.Group, advisor canvas.Advisor, validate *validator.Validate) {
	api := canvasApi{advisor: advisor, validate: validate}

	cg := g.Group("/canvas")
	cg.GET("", api.retrieve)
	cg.GET("/cells", api.cells)
	cg.POST("/save", api.save)
	cg.POST("/reset", api.reset)
	cg.POST("/suggestions", api.suggest)

	cg.POST("/components", api.addComponent)
	cg.PUT("/components", api.updateComponents)
	cg.PATCH("/components/:id", api.editComponent)
	cg.DELETE("/components/:id", api.removeComponent)
	cg.POST("/components/:id/relocate", api.relocate)
}

// Handlers

func (api *canvasApi) cells(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, canvas.Cells())
}

func (api *canvasApi) retrieve(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ws.Canvas.State())
}

func (api *canvasApi) addComponent(ctx echo.Context) error {
	var data AddComponentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddComponentRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	comp, err := ws.Canvas.AddComponent(ctx.Request().Context(), data.Type)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, comp)
}

func (api *canvasApi) updateComponents(ctx echo.Context) error {
	var data UpdateComponentsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateComponentsRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Canvas.UpdateComponents(ctx.Request().Context(), data.Components, data.Suggestions)
	return ctx.JSON(http.StatusOK, ws.Canvas.State())
}

func (api *canvasApi) editComponent(ctx echo.Context) error {
	var data EditComponentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EditComponentRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	comp, err := ws.Canvas.EditContent(ctx.Request().Context(), ctx.Param("id"), data.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comp)
}

func (api *canvasApi) removeComponent(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	if err = ws.Canvas.RemoveComponent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// relocate answers 200 even when the drop is refused: the client snaps the component back.
func (api *canvasApi) relocate(ctx echo.Context) error {
	var data RelocateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RelocateRequest")
	}

	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	comp, err := ws.Canvas.Relocate(ctx.Request().Context(), ctx.Param("id"), canvas.Position{X: data.DX, Y: data.DY})
	switch err {
	case nil:
		return ctx.JSON(http.StatusOK, RelocateResponse{Applied: true, Component: comp})
	case canvas.ErrInvalidPlacement:
		return ctx.JSON(http.StatusOK, RelocateResponse{Applied: false, Component: comp})
	default:
		return err
	}
}

func (api *canvasApi) suggest(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	suggestions, err := ws.Canvas.RefreshSuggestions(ctx.Request().Context(), api.advisor)
	if err != nil {
		return errors.Wrap(err, "refreshing suggestions")
	}
	return ctx.JSON(http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (api *canvasApi) save(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Canvas.Save(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Canvas.State())
}

func (api *canvasApi) reset(ctx echo.Context) error {
	ws, err := getWorkspace(ctx)
	if err != nil {
		return err
	}
	ws.Canvas.Reset(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, ws.Canvas.State())
}
