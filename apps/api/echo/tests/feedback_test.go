package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/hashemmwanes8-maker/uni-ai-coach/apps/api/echo"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/feedback"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	testutil "github.com/hashemmwanes8-maker/uni-ai-coach/tests"
)

const generatePath = "/v1/feedback/generate"

func Test_feedbackApi_generate(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	rival := testutil.CreateUser(t, env.usrRepo, "Dr. Rival", "drrival", "rival@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	crs := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	asg := testutil.CreateAssignment(t, env.asgRepo, crs.ID, "Essay 1", time.Now().Add(24*time.Hour))
	sub := testutil.CreateSubmission(t, env.subRepo, asg.ID, student.ID, "My essay content.")

	lecturerToken := getToken(t, lecturer)
	rivalToken := getToken(t, rival)
	studentToken := getToken(t, student)

	genBody := func(content, title, subID string) []byte {
		return marchallObj(t, feedback.GenerateRequest{
			SubmissionContent: content,
			AssignmentTitle:   title,
			SubmissionID:      subID,
		})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: genBody("An essay.", "", ""),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Lecturer role required", token: studentToken, body: genBody("An essay.", "", ""),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "lecturer role required"}),
		},
		{
			name: "Role check precedes validation", token: studentToken, body: genBody("", "", ""),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "lecturer role required"}),
		},
		{
			name: "Unknown submission", token: lecturerToken, body: genBody("An essay.", "", "b5bb4ad0-0000-0000-0000-000000000000"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "submission not found"}),
		},
		{
			name: "Foreign course ownership", token: rivalToken, body: genBody("An essay.", "", sub.ID),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "you may only act on your own courses"}),
		},
		{
			name: "Empty content", token: lecturerToken, body: genBody("", "Essay 1", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "No submission content provided"}),
		},
		{
			name: "Whitespace-only content", token: lecturerToken, body: genBody("   \n\t ", "Essay 1", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "No submission content provided"}),
		},
		{
			name: "Content too large", token: lecturerToken, body: genBody(strings.Repeat("a", feedback.MaxContentLen+1), "", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Content too large. Maximum 50,000 characters allowed."}),
		},
		{
			name: "Content at limit passes", token: lecturerToken, body: genBody(strings.Repeat("a", feedback.MaxContentLen), "", ""),
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.GenerateFeedbackResponse{Feedback: "Solid work overall."}),
		},
		{
			name: "Title too long", token: lecturerToken, body: genBody("An essay.", strings.Repeat("t", feedback.MaxTitleLen+1), ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Assignment title too long. Maximum 500 characters allowed."}),
		},
		{
			name: "Generate without submission id", token: lecturerToken, body: genBody("An essay.", "Essay 1", ""),
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.GenerateFeedbackResponse{Feedback: "Solid work overall."}),
		},
		{
			name: "Generate for owned submission", token: lecturerToken, body: genBody("My essay content.", "Essay 1", sub.ID),
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.GenerateFeedbackResponse{Feedback: "Solid work overall."}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, generatePath, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// every rejected request must be rejected before the paid gateway call
func Test_feedbackApi_generate_noUpstreamCallOnRejection(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	bodies := [][]byte{
		marchallObj(t, feedback.GenerateRequest{SubmissionContent: ""}),
		marchallObj(t, feedback.GenerateRequest{SubmissionContent: strings.Repeat("a", feedback.MaxContentLen+1)}),
		marchallObj(t, feedback.GenerateRequest{SubmissionContent: "fine", AssignmentTitle: strings.Repeat("t", feedback.MaxTitleLen+1)}),
	}
	for _, body := range bodies {
		req, rec := newAuthRequest(http.MethodPost, generatePath, getToken(t, lecturer), body)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	// unauthenticated and under-privileged callers
	req, rec := newRequest(http.MethodPost, generatePath, marchallObj(t, feedback.GenerateRequest{SubmissionContent: "fine"}))
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, generatePath, getToken(t, student), marchallObj(t, feedback.GenerateRequest{SubmissionContent: "fine"}))
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, 0, env.aiMock.CallCount())
}

// two identical requests mean two gateway calls; nothing is cached
func Test_feedbackApi_generate_noCaching(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	body := marchallObj(t, feedback.GenerateRequest{SubmissionContent: "Same content.", AssignmentTitle: "Essay 1"})

	for i := 0; i < 2; i++ {
		req, rec := newAuthRequest(http.MethodPost, generatePath, getToken(t, lecturer), body)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, env.aiMock.CallCount())
}

func Test_feedbackApi_generate_upstreamFailures(t *testing.T) {
	lecturerFor := func(env *testEnv) user.User {
		return testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	}
	body := marchallObj(t, feedback.GenerateRequest{SubmissionContent: "An essay."})

	tests := []struct {
		name     string
		aiErr    error
		wantCode int
		wantErr  string
	}{
		{
			name: "rate limited", aiErr: core.ErrAIRateLimited,
			wantCode: http.StatusTooManyRequests, wantErr: "Rate limit exceeded. Please try again in a moment.",
		},
		{
			name: "quota exhausted", aiErr: core.ErrAIQuotaExhausted,
			wantCode: http.StatusPaymentRequired, wantErr: "AI credits exhausted. Please add credits to continue.",
		},
		{
			name: "gateway outage stays opaque", aiErr: &core.AIGatewayError{Status: http.StatusServiceUnavailable},
			wantCode: http.StatusInternalServerError, wantErr: "Internal Server Error",
		},
		{
			name: "missing key stays opaque", aiErr: core.ErrAINotConfigured,
			wantCode: http.StatusInternalServerError, wantErr: "Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			env.aiMock.Err = tt.aiErr

			req, rec := newAuthRequest(http.MethodPost, generatePath, getToken(t, lecturerFor(env)), body)
			env.app.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			wantData := marchallObj(t, httpErr{Error: tt.wantErr})
			ok, err := jsonBytesEqual(t, rec.Body.Bytes(), wantData)
			assert.NoError(t, err)
			assert.True(t, ok, "data = %v; wantData %v", rec.Body.String(), string(wantData))
		})
	}
}

// browser preflight must succeed with no credentials at all
func Test_feedbackApi_generate_preflight(t *testing.T) {
	env := setup(t)

	req := httptest.NewRequest(http.MethodOptions, generatePath, nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	env.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	allowHeaders := rec.Header().Get(echo.HeaderAccessControlAllowHeaders)
	for _, hdr := range []string{"Authorization", "x-client-info", "apikey", "Content-Type"} {
		assert.Contains(t, allowHeaders, hdr)
	}
}
