package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

type assignmentApi struct {
	svc       assignment.Service
	courseSvc course.Service
	usrSvc    user.Service
}

func registerAssignmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc assignment.Service,
	courseSvc course.Service,
	usrSvc user.Service,
) {
	api := assignmentApi{svc: svc, courseSvc: courseSvc, usrSvc: usrSvc}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.create, lecturerMiddleware())
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	// lecturers may only publish assignments under their own courses
	crs, err := api.courseSvc.GetByID(data.CourseID)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if !ctxUsr.IsAdmin() && crs.LecturerID != ctxUsr.ID {
		return errNotCourseOwner
	}

	asg, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	var asgs []assignment.Assignment
	var err error
	if courseID := ctx.QueryParam("course"); courseID != "" {
		asgs, err = api.svc.QueryByCourse(courseID)
	} else {
		asgs, err = api.svc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding assignment by ID")
	}
	return ctx.JSON(http.StatusOK, asg)
}
