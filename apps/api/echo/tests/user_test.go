package tests

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/hashemmwanes8-maker/uni-ai-coach/apps/api/echo"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	testutil "github.com/hashemmwanes8-maker/uni-ai-coach/tests"
)

func Test_userApi_login(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "Jane Awe", "janeawe", "jane@test.cd", "LordOfTheRings", nil, true)
	testutil.CreateUser(t, env.usrRepo, "Inactive", "inactive", "inactive@test.cd", "LordOfTheRings", nil, false)

	loginBody := func(uname, pwd string) []byte {
		return marchallObj(t, echoapi.LoginRequest{Username: uname, Password: pwd})
	}

	tests := []httpTest{
		{
			name: "empty payload", body: loginBody("", ""), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required", "password": "this field is required",
			}),
		},
		{
			name: "unknown user", body: loginBody("ghost", "LordOfTheRings"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: loginBody(usr.Username, "nope"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: loginBody("inactive", "LordOfTheRings"), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/login", loginBody("janeawe", "LordOfTheRings"))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "token")
	})

	t.Run("login by email", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/login", loginBody("jane@test.cd", "LordOfTheRings"))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_userApi_query(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	lecturer := testutil.CreateUser(t, env.usrRepo, "Dr. Jane", "drjane", "jane@test.cd", "", []string{user.RoleLecturer}, true, time.Now().Add(time.Hour))
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	adminToken := getToken(t, admin)
	path := func(params url.Values) string { return "/v1/users?" + params.Encode() }

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallList(t, student, lecturer, admin),
		},
		{
			name: "role=lecturer:", path: path(url.Values{"role": {user.RoleLecturer}}), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, lecturer),
		},
		{
			name: "search", path: path(url.Values{"search": {"hero"}}), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, student),
		},
		{
			name: "search (unknown)", path: path(url.Values{"search": {"lol"}}), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...),
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

func Test_userApi_retrieve(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, env.usrRepo, "Other", "other1", "other@test.cd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	tests := []httpTest{
		{
			name: "own profile", path: "/v1/users/" + usr.ID, token: getToken(t, usr),
			wantCode: http.StatusOK, wantData: marchallObj(t, usr),
		},
		{
			name: "admin can read anyone", path: "/v1/users/" + usr.ID, token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, usr),
		},
		{
			name: "someone else's profile hidden", path: "/v1/users/" + usr.ID, token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
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
