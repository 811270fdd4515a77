package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/feedback"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

type feedbackApi struct {
	svc    feedback.Service
	subSvc submission.Service
	usrSvc user.Service
}

func registerFeedbackAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc feedback.Service,
	subSvc submission.Service,
	usrSvc user.Service,
) {
	api := feedbackApi{svc: svc, subSvc: subSvc, usrSvc: usrSvc}

	fg := g.Group("/feedback", jwt)
	fg.POST("/generate", api.generate, lecturerMiddleware())
}

// generate produces AI feedback for submitted coursework. Order matters:
// authorization before validation before the paid gateway call, so an
// unauthorized caller learns nothing about payload handling and an invalid
// payload never costs credits.
func (api *feedbackApi) generate(ctx echo.Context) error {
	var data feedback.GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}

	if data.SubmissionID != "" {
		ctxUsr, err := getContextUser(ctx, api.usrSvc)
		if err != nil {
			return errors.Wrap(err, "getting context user")
		}
		if err := checkCourseOwnership(api.subSvc, ctxUsr, data.SubmissionID); err != nil {
			return err
		}
	}

	if err := data.Validate(); err != nil {
		return err
	}

	fb, err := api.svc.Generate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating feedback")
	}
	return ctx.JSON(http.StatusOK, GenerateFeedbackResponse{Feedback: fb})
}

type GenerateFeedbackResponse struct {
	Feedback string `json:"feedback"`
}
