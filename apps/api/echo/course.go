package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
)

type (
	SaveContentRequest struct {
		Modules []course.Module `json:"modules"`
	}

	AddModuleRequest struct {
		Type  content.Type `json:"type" validate:"required"`
		Title string       `json:"title"`
	}

	MoveModuleRequest struct {
		Direction course.Direction `json:"direction" validate:"oneof=up down"`
	}

	// ModuleResponse is the edited course along with the module the edit targeted.
	ModuleResponse struct {
		Module course.Module `json:"module"`
		Course course.Course `json:"course"`
	}

	OpResponse struct {
		Changed bool          `json:"changed"`
		NewID   string        `json:"new_id,omitempty"`
		Course  course.Course `json:"course"`
	}
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.list)
	cg.GET("/:id", api.retrieve)

	// authoring endpoints
	cg.POST("", api.create, adminMiddleware)
	cg.PUT("/:id/content", api.saveContent, adminMiddleware)
	cg.POST("/:id/modules", api.addModule, adminMiddleware)
	cg.PATCH("/:id/modules/:moduleID", api.updateModule, adminMiddleware)
	cg.DELETE("/:id/modules/:moduleID", api.deleteModule, adminMiddleware)
	cg.POST("/:id/modules/:moduleID/move", api.moveModule, adminMiddleware)
	cg.POST("/:id/modules/:moduleID/ops", api.applyOp, adminMiddleware)
}

func (api *courseApi) list(ctx echo.Context) error {
	courses, err := api.svc.ListPublished(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) saveContent(ctx echo.Context) error {
	var data SaveContentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveContentRequest")
	}

	c, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	c.Modules = data.Modules
	if c.Modules == nil {
		c.Modules = make([]course.Module, 0)
	}

	saved, err := api.svc.SaveContent(ctx.Request().Context(), c)
	if err != nil {
		return errors.Wrap(err, "saving course content")
	}
	return ctx.JSON(http.StatusOK, saved)
}

func (api *courseApi) addModule(ctx echo.Context) error {
	var data AddModuleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddModuleRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	if !data.Type.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "type", Error: "unknown module type"})
	}

	var added course.Module
	c, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), func(e *course.Editor) (bool, error) {
		var ok bool
		added, ok = e.AddModule(data.Type, data.Title)
		return ok, nil
	})
	if err != nil {
		return errors.Wrap(err, "adding module")
	}
	return ctx.JSON(http.StatusCreated, ModuleResponse{Module: added, Course: c})
}

func (api *courseApi) updateModule(ctx echo.Context) error {
	var data course.ModuleUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ModuleUpdate")
	}

	moduleID := ctx.Param("moduleID")
	c, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), func(e *course.Editor) (bool, error) {
		return e.UpdateModule(moduleID, data)
	})
	if err != nil {
		return errors.Wrap(err, "updating module")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) deleteModule(ctx echo.Context) error {
	moduleID := ctx.Param("moduleID")
	c, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), func(e *course.Editor) (bool, error) {
		return e.DeleteModule(moduleID), nil
	})
	if err != nil {
		return errors.Wrap(err, "deleting module")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) moveModule(ctx echo.Context) error {
	var data MoveModuleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MoveModuleRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	moduleID := ctx.Param("moduleID")
	c, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), func(e *course.Editor) (bool, error) {
		return e.MoveModule(moduleID, data.Direction), nil
	})
	if err != nil {
		return errors.Wrap(err, "moving module")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) applyOp(ctx echo.Context) error {
	var data course.Op
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Op")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	var res OpResponse
	moduleID := ctx.Param("moduleID")
	c, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), func(e *course.Editor) (bool, error) {
		changed, newID, err := e.Apply(moduleID, data)
		res.Changed, res.NewID = changed, newID
		return changed, err
	})
	if err != nil {
		return errors.Wrap(err, "applying module operation")
	}
	res.Course = c
	return ctx.JSON(http.StatusOK, res)
}
