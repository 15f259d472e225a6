package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
)

type classApi struct {
	svc     class.ServiceInterface
	userSvc user.ServiceInterface
}

func registerClassAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc class.ServiceInterface,
	userSvc user.ServiceInterface,
) {
	api := classApi{
		svc:     svc,
		userSvc: userSvc,
	}

	cg := g.Group("/classes", jwt)
	cg.GET("/teaching", api.teaching, teacherMiddleware())
	cg.GET("/enrolled", api.enrolled)
	cg.GET("/:id", api.retrieve)
}

// Handlers

func (api *classApi) teaching(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, err := api.svc.Teaching(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying teacher classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) enrolled(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, err := api.svc.Enrolled(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying enrolled classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

// retrieve returns a class to its teacher, its students or an admin.
func (api *classApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	cls, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding class by ID")
	}
	if !claims.IsAdmin && cls.TeacherID != claims.Subject && !cls.HasStudent(claims.Subject) {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, cls)
}
