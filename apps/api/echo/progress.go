package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *progress.Service) {
	api := progressApi{svc: svc}

	g.GET("/dashboard", api.dashboard, jwt)

	cg := g.Group("/courses/:id", jwt)
	cg.POST("/enroll", api.enroll)
	cg.GET("/progress", api.progress)
	cg.POST("/modules/:moduleID/complete", api.completeModule)
}

func (api *progressApi) enroll(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	enr, err := api.svc.Enroll(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *progressApi) progress(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	prog, err := api.svc.CourseProgress(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *progressApi) completeModule(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	prog, err := api.svc.CompleteModule(ctx.Request().Context(), claims.Subject, ctx.Param("id"), ctx.Param("moduleID"))
	if err != nil {
		return errors.Wrap(err, "completing module")
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *progressApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	dash, err := api.svc.Dashboard(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}
