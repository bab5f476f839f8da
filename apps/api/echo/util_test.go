package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/core/assignment"
	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	logsvc "github.com/codewithmesree/saiu-learnflow/services/logger"
	"github.com/codewithmesree/saiu-learnflow/storage/memkv"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

const doc = "data:application/pdf;base64,JVBERi0xLjQK"

type (
	httpTest struct {
		name     string
		method   string
		path     string
		body     interface{}
		session  string
		wantCode int
		wantData interface{}
	}

	httpErr struct {
		Error string `json:"error"`
	}

	testApp struct {
		server *Server
		kv     *memkv.Store
		deps   ServerDeps
	}
)

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conf := &core.Config{
		AppName:  "LearnFlow",
		Env:      "TEST",
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true},
	}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	kv := memkv.Open()
	validate, translator := testutil.NewValidator()
	usrSvc := user.NewService(kv, nil)
	deps := ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		AuthSvc:         auth.NewService(kv, usrSvc, validate),
		UserSvc:         usrSvc,
		CourseSvc:       course.NewService(kv),
		AnnouncementSvc: announcement.NewService(kv),
		AssignmentSvc:   assignment.NewService(kv),
		SubmissionSvc:   submission.NewService(kv),
		ScheduleSvc:     schedule.NewService(kv),
	}
	return &testApp{server: NewServer(deps), kv: kv, deps: deps}
}

func (app *testApp) do(t *testing.T, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if session != "" {
		req.Header.Set(echo.HeaderAuthorization, bearerPrefix+session)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

// login returns a session id for the given account.
func (app *testApp) login(t *testing.T, email, pwd, role string) string {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/v1/auth/login", "", auth.Credentials{Email: email, Password: pwd, Role: role})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[loginResponse](t, rec)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func (app *testApp) adminSession(t *testing.T) string {
	t.Helper()
	return app.login(t, user.DefaultAdmin.Email, user.DefaultAdmin.Password, user.RoleAdmin)
}

// createAccount registers a user through the admin endpoints and logs it in.
func (app *testApp) createAccount(t *testing.T, adminSession, role, name, email string) (user.User, string) {
	t.Helper()
	path := "/v1/users/students"
	if role == user.RoleProfessor {
		path = "/v1/users/professors"
	}
	rec := app.do(t, http.MethodPost, path, adminSession, auth.Registration{
		Name:            name,
		Email:           email,
		Password:        "secret",
		ConfirmPassword: "secret",
		Department:      user.Departments[0],
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[user.User](t, rec), app.login(t, email, "secret", role)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func marshalObj(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func runHTTPTests(t *testing.T, app *testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.session, tt.body)
			checkCodeAndData(t, rec, tt.wantCode, tt.wantData)
		})
	}
}

func checkCodeAndData(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantData interface{}) {
	t.Helper()
	assert.Equal(t, wantCode, rec.Code, rec.Body.String())
	if wantData != nil {
		assert.JSONEq(t, string(marshalObj(t, wantData)), rec.Body.String())
	}
}
