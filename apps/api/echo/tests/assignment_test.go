package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	testutil "github.com/hashemmwanes8-maker/uni-ai-coach/tests"
)

func Test_assignmentApi_create(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	rival := testutil.CreateUser(t, env.usrRepo, "Dr. Rival", "drrival", "rival@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	crs := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	due := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)

	body := func(courseID, title string) []byte {
		return marchallObj(t, assignment.NewAssignment{CourseID: courseID, Title: title, DueAt: due})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: body(crs.ID, "Essay 1"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Lecturer required", token: getToken(t, student), body: body(crs.ID, "Essay 1"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "lecturer role required"}),
		},
		{
			name: "unknown course", token: getToken(t, lecturer), body: body("none", "Essay 1"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "foreign course", token: getToken(t, rival), body: body(crs.ID, "Essay 1"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "you may only act on your own courses"}),
		},
		{
			name: "title too short", token: getToken(t, lecturer), body: body(crs.ID, "E"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "title must be at least 3 characters in length"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", getToken(t, lecturer), body(crs.ID, "Essay 1"))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v (%s)", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})
}

func Test_assignmentApi_query(t *testing.T) {
	env := setup(t)

	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true)
	student := testutil.CreateUser(t, env.usrRepo, "Stu", "student1", "stu@test.cd", "", []string{user.RoleStudent}, true)

	crs1 := testutil.CreateCourse(t, env.crsRepo, "CS101", "Intro to Computer Science", lecturer.ID)
	crs2 := testutil.CreateCourse(t, env.crsRepo, "MATH201", "Linear Algebra", lecturer.ID)
	asg1 := testutil.CreateAssignment(t, env.asgRepo, crs1.ID, "Essay 1", time.Now().Add(24*time.Hour))
	asg2 := testutil.CreateAssignment(t, env.asgRepo, crs2.ID, "Problem Set 1", time.Now().Add(48*time.Hour))

	tests := []httpTest{
		{
			name: "all assignments", path: "/v1/assignments", token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallList(t, asg1, asg2),
		},
		{
			name: "by course", path: "/v1/assignments?course=" + crs1.ID, token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallList(t, asg1),
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
