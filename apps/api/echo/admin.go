package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/stats"
)

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *stats.Service) {
	ag := g.Group("/admin", jwt, adminMiddleware)
	ag.GET("/stats", func(ctx echo.Context) error {
		st, err := svc.Get(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "getting stats")
		}
		return ctx.JSON(http.StatusOK, st)
	})
}
