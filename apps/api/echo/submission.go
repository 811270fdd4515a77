package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

type submissionApi struct {
	svc       submission.Service
	asgSvc    assignment.Service
	courseSvc course.Service
	usrSvc    user.Service
}

func registerSubmissionAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc submission.Service,
	asgSvc assignment.Service,
	courseSvc course.Service,
	usrSvc user.Service,
) {
	api := submissionApi{svc: svc, asgSvc: asgSvc, courseSvc: courseSvc, usrSvc: usrSvc}

	sg := g.Group("/submissions", jwt)
	sg.POST("", api.create, studentMiddleware())
	sg.GET("", api.query)
	sg.GET("/mine", api.mine, studentMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.POST("/:id/document", api.attachDocument, studentMiddleware())
	sg.POST("/:id/grade", api.grade, lecturerMiddleware())
}

func (api *submissionApi) create(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	sub, err := api.svc.Submit(ctxUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

// query lists submissions for an assignment; the caller must own the course
// the assignment belongs to.
func (api *submissionApi) query(ctx echo.Context) error {
	assignmentID := ctx.QueryParam("assignment")
	if assignmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "assignment query parameter required")
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !ctxUsr.IsLecturer() && !ctxUsr.IsAdmin() {
		return errLecturerRequired
	}

	asg, err := api.asgSvc.GetByID(assignmentID)
	if err != nil {
		return errors.Wrap(err, "finding assignment by ID")
	}
	if !ctxUsr.IsAdmin() {
		crs, err := api.courseSvc.GetByID(asg.CourseID)
		if err != nil {
			return errors.Wrap(err, "finding course by ID")
		}
		if crs.LecturerID != ctxUsr.ID {
			return errNotCourseOwner
		}
	}

	subs, err := api.svc.QueryByAssignment(assignmentID)
	if err != nil {
		return errors.Wrap(err, "querying submissions by assignment")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) mine(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	subs, err := api.svc.QueryByStudent(ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying submissions by student")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding submission by ID")
	}

	if err := api.checkAccess(ctx, sub); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) attachDocument(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding submission by ID")
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if sub.StudentID != ctxUsr.ID {
		return errHttpForbidden
	}

	fileHdr, err := ctx.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file required")
	}
	file, err := fileHdr.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded document")
	}
	defer file.Close()

	sub, err = api.svc.AttachDocument(ctx.Request().Context(), sub.ID, fileHdr.Filename, fileHdr.Size, file)
	if err != nil {
		return errors.Wrap(err, "attaching document")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) grade(ctx echo.Context) error {
	var data submission.GradeSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeSubmission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err := checkCourseOwnership(api.svc, ctxUsr, ctx.Param("id")); err != nil {
		return err
	}

	sub, err := api.svc.Grade(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

// checkAccess admits the submitting student, the owning lecturer and admins.
func (api *submissionApi) checkAccess(ctx echo.Context, sub submission.Submission) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if ctxUsr.IsAdmin() || sub.StudentID == ctxUsr.ID {
		return nil
	}
	if ctxUsr.IsLecturer() {
		return checkCourseOwnership(api.svc, ctxUsr, sub.ID)
	}
	return errHttpForbidden
}

// checkCourseOwnership resolves the submission - assignment - course chain and
// rejects lecturers acting on another lecturer's course. Admins pass.
func checkCourseOwnership(svc submission.Service, ctxUsr user.User, submissionID string) error {
	owner, err := svc.GetOwner(submissionID)
	if err != nil {
		return errors.Wrap(err, "resolving submission owner")
	}
	if !ctxUsr.IsAdmin() && owner.LecturerID != ctxUsr.ID {
		return errNotCourseOwner
	}
	return nil
}
