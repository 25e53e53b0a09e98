package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/onboarding"
)

type (
	SubmitOnboardingRequest struct {
		Answers onboarding.Answers `json:"answers" validate:"required"`
	}

	SelectTierRequest struct {
		Tier onboarding.Tier `json:"tier" validate:"required"`
	}
)

type onboardingApi struct {
	svc      *onboarding.Service
	validate *validator.Validate
}

func registerOnboardingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *onboarding.Service, validate *validator.Validate) {
	api := onboardingApi{svc: svc, validate: validate}

	// catalogues
	g.GET("/onboarding/questions", api.questions)
	g.GET("/plans", api.plans)

	og := g.Group("/onboarding", jwt)
	og.GET("", api.status)
	og.POST("", api.submit)
	og.POST("/reset", api.reset)

	g.PUT("/subscription", api.selectTier, jwt)
}

// questions renders the questionnaire in the language of the `lang` query param (`en` or `id`).
func (api *onboardingApi) questions(ctx echo.Context) error {
	lang := onboarding.ParseLanguage(ctx.QueryParam("lang"))
	return ctx.JSON(http.StatusOK, onboarding.QuestionsIn(lang))
}

func (api *onboardingApi) plans(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, onboarding.Plans)
}

func (api *onboardingApi) status(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	status, err := api.svc.Status(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting onboarding status")
	}
	return ctx.JSON(http.StatusOK, status)
}

func (api *onboardingApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data SubmitOnboardingRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitOnboardingRequest")
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	prof, err := api.svc.Submit(ctx.Request().Context(), claims.Identity(), data.Answers)
	if err != nil {
		return errors.Wrap(err, "submitting onboarding")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *onboardingApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Reset(ctx.Request().Context(), claims.Subject); err != nil {
		return errors.Wrap(err, "resetting onboarding")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *onboardingApi) selectTier(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data SelectTierRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectTierRequest")
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	prof, err := api.svc.SelectTier(ctx.Request().Context(), claims.Subject, data.Tier)
	if err != nil {
		return errors.Wrap(err, "selecting subscription tier")
	}
	return ctx.JSON(http.StatusOK, prof)
}
