package echoapi

import (
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
)

type moduleApi struct {
	svc     module.ServiceInterface
	userSvc user.ServiceInterface
}

func registerModuleAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc module.ServiceInterface,
	userSvc user.ServiceInterface,
) {
	api := moduleApi{
		svc:     svc,
		userSvc: userSvc,
	}

	mg := g.Group("/modules", jwt)
	mg.GET("", api.query)
	mg.GET("/categories", api.queryCategories)
	mg.GET("/student", api.queryForStudent)
	mg.POST("", api.create, teacherMiddleware())
	mg.POST("/import", api.importDocument, teacherMiddleware())

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, teacherMiddleware())
	dg.DELETE("", api.destroy, teacherMiddleware())
	dg.POST("/publish", api.publish, teacherMiddleware())
	dg.POST("/unpublish", api.unpublish, teacherMiddleware())

	vg := dg.Group("/viewer")
	vg.GET("", api.openViewer)
	vg.POST("/sections/:sid/complete", api.completeSection)
	vg.POST("/sections/:sid/acknowledge", api.acknowledgeSection)
	vg.POST("/sections/:sid/answer", api.submitAnswer)
}

// Handlers

func (api *moduleApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	filter := new(module.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []module.Module{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	var docs []module.Module
	if filter.IsEmpty() && ordering.Orderings == nil {
		docs, err = api.svc.VisibleTo(ctx.Request().Context(), claims.Subject, claims.IsAdmin)
	} else {
		docs, err = api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
		if err == nil && !claims.IsAdmin {
			visible := make([]module.Module, 0, len(docs))
			for _, doc := range docs {
				if doc.VisibleTo(claims.Subject) {
					visible = append(visible, doc)
				}
			}
			docs = visible
		}
	}
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	if docs == nil {
		docs = []module.Module{}
	}
	return ctx.JSON(http.StatusOK, docs)
}

func (api *moduleApi) queryCategories(ctx echo.Context) error {
	cats, err := api.svc.Categories(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	if cats == nil {
		cats = []module.Category{}
	}
	return ctx.JSON(http.StatusOK, cats)
}

// queryForStudent lists published modules scoped to the caller's classes
// and learning styles. An explicit ?style= param narrows further.
func (api *moduleApi) queryForStudent(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	styles := make([]module.LearningStyle, 0, len(usr.LearningStyles))
	if param := ctx.QueryParam("style"); param != "" {
		style := module.LearningStyle(param)
		if !style.Valid() {
			return core.NewValidationError(nil, core.FieldError{Field: "style", Error: "invalid learning style"})
		}
		styles = append(styles, style)
	} else {
		for _, s := range usr.LearningStyles {
			styles = append(styles, module.LearningStyle(s))
		}
	}

	docs, err := api.svc.ForStudent(ctx.Request().Context(), usr.ID, styles)
	if err != nil {
		return errors.Wrap(err, "querying student modules")
	}
	if docs == nil {
		docs = []module.Module{}
	}
	return ctx.JSON(http.StatusOK, docs)
}

func (api *moduleApi) create(ctx echo.Context) error {
	var doc module.Module
	if err := ctx.Bind(&doc); err != nil {
		return errors.Wrap(err, "binding to Module")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	doc.CreatedBy = claims.Subject
	doc.Published = false

	doc, err = api.svc.Create(ctx.Request().Context(), doc)
	if err != nil {
		return errors.Wrap(err, "creating module")
	}
	return ctx.JSON(http.StatusCreated, doc)
}

// importDocument accepts a raw authoring document, validates it against
// the document schema and saves it as a new draft.
func (api *moduleApi) importDocument(ctx echo.Context) error {
	data, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}

	doc, err := module.ImportDocument(data)
	if err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	doc.CreatedBy = claims.Subject
	doc.Published = false

	doc, err = api.svc.Create(ctx.Request().Context(), doc)
	if err != nil {
		return errors.Wrap(err, "saving imported module")
	}
	return ctx.JSON(http.StatusCreated, doc)
}

func (api *moduleApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	doc, err := api.svc.GetVisible(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.IsAdmin)
	if err != nil {
		if errors.Cause(err) == module.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding module by ID")
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *moduleApi) update(ctx echo.Context) error {
	doc, err := api.ownedModule(ctx)
	if err != nil {
		return err
	}

	var data module.Module
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Module")
	}

	data, err = api.svc.Update(ctx.Request().Context(), doc.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating module")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *moduleApi) destroy(ctx echo.Context) error {
	doc, err := api.ownedModule(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), doc.ID); err != nil {
		return errors.Wrap(err, "deleting module")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *moduleApi) publish(ctx echo.Context) error {
	return api.togglePublish(ctx, true)
}

func (api *moduleApi) unpublish(ctx echo.Context) error {
	return api.togglePublish(ctx, false)
}

func (api *moduleApi) togglePublish(ctx echo.Context, published bool) error {
	doc, err := api.ownedModule(ctx)
	if err != nil {
		return err
	}
	doc, err = api.svc.TogglePublish(ctx.Request().Context(), doc.ID, published)
	if err != nil {
		return errors.Wrap(err, "toggling module publication")
	}
	return ctx.JSON(http.StatusOK, doc)
}

// Viewer handlers

func (api *moduleApi) openViewer(ctx echo.Context) error {
	viewer, err := api.viewer(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ViewerResponse{
		Sections: viewer.RenderAll(),
		Progress: viewer.Progress(),
	})
}

func (api *moduleApi) completeSection(ctx echo.Context) error {
	viewer, err := api.viewer(ctx)
	if err != nil {
		return err
	}
	if err := viewer.MarkComplete(ctx.Param("sid")); err != nil {
		return viewerError(err)
	}
	return ctx.JSON(http.StatusOK, viewer.Progress())
}

func (api *moduleApi) acknowledgeSection(ctx echo.Context) error {
	viewer, err := api.viewer(ctx)
	if err != nil {
		return err
	}
	if err := viewer.Acknowledge(ctx.Param("sid")); err != nil {
		return viewerError(err)
	}
	return ctx.JSON(http.StatusOK, viewer.Progress())
}

func (api *moduleApi) submitAnswer(ctx echo.Context) error {
	viewer, err := api.viewer(ctx)
	if err != nil {
		return err
	}

	var ans module.Answer
	if err := ctx.Bind(&ans); err != nil {
		return errors.Wrap(err, "binding to Answer")
	}

	result, err := viewer.SubmitAnswer(ctx.Param("sid"), ans)
	if err != nil {
		return viewerError(err)
	}
	return ctx.JSON(http.StatusOK, AnswerResponse{
		Result:   result,
		Progress: viewer.Progress(),
	})
}

// Helpers

// viewer opens a Viewer for the caller over a module they may see.
func (api *moduleApi) viewer(ctx echo.Context) (*module.Viewer, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting context claims")
	}

	if _, err = api.svc.GetVisible(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.IsAdmin); err != nil {
		if errors.Cause(err) == module.ErrNotFound {
			return nil, errHttpNotFound
		}
		return nil, errors.Wrap(err, "finding module by ID")
	}

	viewer, err := api.svc.OpenViewer(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return nil, errors.Wrap(err, "opening module viewer")
	}
	return viewer, nil
}

// ownedModule fetches the module and refuses callers that neither created
// it nor hold an admin role.
func (api *moduleApi) ownedModule(ctx echo.Context) (module.Module, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return module.Module{}, errors.Wrap(err, "getting context claims")
	}

	doc, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == module.ErrNotFound {
			return module.Module{}, errHttpNotFound
		}
		return module.Module{}, errors.Wrap(err, "finding module by ID")
	}
	if !claims.IsAdmin && doc.CreatedBy != claims.Subject {
		return module.Module{}, errHttpForbidden
	}
	return doc, nil
}

func viewerError(err error) error {
	if err == module.ErrSectionNotFound {
		return errHttpNotFound
	}
	return core.NewValidationError(err)
}

type (
	ViewerResponse struct {
		Sections []module.RenderedSection `json:"sections"`
		Progress module.Progress          `json:"progress"`
	}

	AnswerResponse struct {
		Result   module.AnswerResult `json:"result"`
		Progress module.Progress     `json:"progress"`
	}
)
