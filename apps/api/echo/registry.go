package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
)

type seniorApi struct {
	svc      registry.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerSeniorAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc registry.ServiceInterface,
	userSvc user.ServiceInterface,
	validate *validator.Validate,
) {
	api := seniorApi{
		svc:      svc,
		userSvc:  userSvc,
		validate: validate,
	}

	// senior records are restricted to BASCA officers and admins
	sg := g.Group("/seniors", jwt, bascaMiddleware())
	sg.GET("", api.query)
	sg.GET("/stats", api.stats)
	sg.POST("", api.create)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.POST("/status", api.setStatus)
}

// Handlers

func (api *seniorApi) create(ctx echo.Context) error {
	var data registry.NewSeniorCitizen
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSeniorCitizen")
	}
	data.Clean()
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	data.CreatedBy = claims.Subject

	sc, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering senior")
	}
	return ctx.JSON(http.StatusCreated, sc)
}

func (api *seniorApi) query(ctx echo.Context) error {
	filter := new(registry.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []registry.SeniorCitizen{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	seniors, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying seniors")
	}
	if seniors == nil {
		seniors = []registry.SeniorCitizen{}
	}
	return ctx.JSON(http.StatusOK, seniors)
}

func (api *seniorApi) retrieve(ctx echo.Context) error {
	sc, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == registry.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding senior by ID")
	}
	return ctx.JSON(http.StatusOK, sc)
}

func (api *seniorApi) update(ctx echo.Context) error {
	var data registry.UpdateSenior
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSenior")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	sc, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == registry.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating senior")
	}
	return ctx.JSON(http.StatusOK, sc)
}

func (api *seniorApi) setStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}

	sc, err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("id"), registry.Status(data.Status))
	if err != nil {
		if errors.Cause(err) == registry.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "setting senior status")
	}
	return ctx.JSON(http.StatusOK, sc)
}

func (api *seniorApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing registry stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

type StatusRequest struct {
	Status string `json:"status"`
}
