package tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	testutil "github.com/hashemmwanes8-maker/uni-ai-coach/tests"
)

func Test_submissionApi_create(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	crs := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	asg := testutil.CreateAssignment(t, env.asgRepo, crs.ID, "Essay 1", time.Now().Add(24*time.Hour))

	body := func(assignmentID, content string) []byte {
		return marchallObj(t, submission.NewSubmission{AssignmentID: assignmentID, Content: content})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: body(asg.ID, "My essay."),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Student required", token: getToken(t, lecturer), body: body(asg.ID, "My essay."),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "content required", token: getToken(t, student), body: body(asg.ID, ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"content": "this field is required"}),
		},
		{
			name: "unknown assignment", token: getToken(t, student), body: body("none", "My essay."),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "assignment not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/submissions", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/submissions", getToken(t, student), body(asg.ID, "My essay."))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v (%s)", rec.Code, http.StatusCreated, rec.Body.String())
		}
		subs, err := env.subRepo.QuerySubmissionsByStudent(student.ID)
		if err != nil {
			t.Fatalf("QuerySubmissionsByStudent(): %v", err)
		}
		if len(subs) != 1 || subs[0].Status != submission.StatusSubmitted {
			t.Errorf("subs = %+v; want one submitted", subs)
		}
	})
}

func Test_submissionApi_grade(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	rival := testutil.CreateUser(t, env.usrRepo, "Dr. Rival", "drrival", "rival@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	crs := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	asg := testutil.CreateAssignment(t, env.asgRepo, crs.ID, "Essay 1", time.Now().Add(24*time.Hour))
	sub := testutil.CreateSubmission(t, env.subRepo, asg.ID, student.ID, "My essay content.")

	fPtr := func(f float64) *float64 { return &f }
	body := func(grade *float64, fb string) []byte {
		return marchallObj(t, submission.GradeSubmission{Grade: grade, Feedback: fb})
	}
	gradePath := "/v1/submissions/" + sub.ID + "/grade"

	tests := []httpTest{
		{
			name: "Lecturer required", token: getToken(t, student), body: body(fPtr(80), ""),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "lecturer role required"}),
		},
		{
			name: "Foreign course", token: getToken(t, rival), body: body(fPtr(80), ""),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "you may only act on your own courses"}),
		},
		{
			name: "grade required", token: getToken(t, lecturer), body: body(nil, ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"grade": "this field is required"}),
		},
		{
			name: "grade above bound", token: getToken(t, lecturer), body: body(fPtr(101), ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"grade": "grade must be 100 or less"}),
		},
		{
			name: "grade below bound", token: getToken(t, lecturer), body: body(fPtr(-1), ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"grade": "grade must be 0 or greater"}),
		},
		{
			name: "feedback too long", token: getToken(t, lecturer), body: body(fPtr(80), strings.Repeat("f", 5001)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"feedback": "feedback must be a maximum of 5,000 characters in length"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, gradePath, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, gradePath, getToken(t, lecturer), body(fPtr(85), "Good effort."))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v (%s)", rec.Code, http.StatusOK, rec.Body.String())
		}
		graded, err := env.subRepo.GetSubmissionByID(sub.ID)
		if err != nil {
			t.Fatalf("GetSubmissionByID(): %v", err)
		}
		assert.Equal(t, submission.StatusGraded, graded.Status)
		assert.Equal(t, 85.0, graded.Grade.Float64)
		assert.Equal(t, "Good effort.", graded.Feedback.String)
	})
}

func Test_submissionApi_retrieve(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	rival := testutil.CreateUser(t, env.usrRepo, "Dr. Rival", "drrival", "rival@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, env.usrRepo, "Other", "other1", "other@test.cd", "", []string{user.RoleStudent}, true)

	crs := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	asg := testutil.CreateAssignment(t, env.asgRepo, crs.ID, "Essay 1", time.Now().Add(24*time.Hour))
	sub := testutil.CreateSubmission(t, env.subRepo, asg.ID, student.ID, "My essay content.")

	path := "/v1/submissions/" + sub.ID

	tests := []httpTest{
		{name: "submitting student", path: path, token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallObj(t, sub)},
		{name: "owning lecturer", path: path, token: getToken(t, lecturer), wantCode: http.StatusOK, wantData: marchallObj(t, sub)},
		{
			name: "foreign lecturer", path: path, token: getToken(t, rival),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "you may only act on your own courses"}),
		},
		{
			name: "other student", path: path, token: getToken(t, other),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
