package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core/workspace"
	metricsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/metrics"
)

const workspaceContextKey = "workspace"

// workspaceMiddleware opens the workspace of the authenticated learner.
func workspaceMiddleware(workspaces *workspace.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			ws, err := workspaces.Open(ctx.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Cause(err) == workspace.ErrNoLearner {
					return errUnauthorized
				}
				return errors.Wrap(err, "opening workspace")
			}
			ctx.Set(workspaceContextKey, ws)
			return next(ctx)
		}
	}
}

func getWorkspace(ctx echo.Context) (*workspace.Workspace, error) {
	if ws, ok := ctx.Get(workspaceContextKey).(*workspace.Workspace); ok {
		return ws, nil
	}
	return nil, errors.New("workspace not found in echo.Context")
}

// metricsMiddleware handles the error of the request itself so that the observed status is the one sent.
func metricsMiddleware(metrics *metricsvc.PrometheusRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			req := ctx.Request()
			metrics.ObserveRequest(req.Method, ctx.Path(), ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
