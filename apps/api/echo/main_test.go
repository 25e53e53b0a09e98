package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/kelasdev/kelas/apps/api/echo"
	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/core/progress"
	"github.com/kelasdev/kelas/core/stats"
	appfs "github.com/kelasdev/kelas/fs"
	emailsvc "github.com/kelasdev/kelas/services/email"
	logsvc "github.com/kelasdev/kelas/services/logger"
	inmemdb "github.com/kelasdev/kelas/storage/database/inmem"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type testApp struct {
	conf       *core.Config
	server     *echoapi.Server
	mailSvc    *emailsvc.ConsoleServiceMock
	courseSvc  *course.Service
	onboardSvc *onboarding.Service
}

func setup(t *testing.T) testApp {
	t.Helper()
	conf := core.NewTestConfig()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	tmpls, err := core.ParseEmailTemplates(appfs.EmailTemplates(), conf)
	require.NoError(t, err)
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, tmpls, logger)

	// set up DB & repos
	db := inmemdb.Open()
	courseRepo := inmemdb.NewCourseRepository(db)
	onboardingRepo := inmemdb.NewOnboardingRepository(db)

	// set up services
	courseSvc := course.NewService(courseRepo, validate)
	onboardSvc := onboarding.NewService(onboardingRepo, mailSvc, conf)
	server := echoapi.NewServer(conf, logger, &echoapi.Deps{
		DB:            db,
		Validate:      validate,
		Translator:    translator,
		CourseSvc:     courseSvc,
		OnboardingSvc: onboardSvc,
		ProgressSvc:   progress.NewService(inmemdb.NewProgressRepository(db), courseSvc, onboardingRepo),
		StatsSvc:      stats.NewService(inmemdb.NewStatsRepository(db)),
	})

	return testApp{conf: conf, server: server, mailSvc: mailSvc, courseSvc: courseSvc, onboardSvc: onboardSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do sends the request to the app and returns the recorded response.
func (app testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, conf *core.Config, subject, role string) string {
	t.Helper()
	claims := echoapi.NewClaims(conf, subject, subject+"@kelas.test", "User "+subject, role, time.Hour)
	token, err := echoapi.GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestServer_Home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Kelas API!", rec.Body.String())

	runHTTPTests(t, app, []httpTest{
		{name: "health", method: http.MethodGet, path: "/v1/health", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
		{name: "trailing slash", method: http.MethodGet, path: "/v1/health/", wantCode: http.StatusOK},
	})
}

func TestServer_Auth(t *testing.T) {
	app := setup(t)

	expired, err := echoapi.GenerateToken(app.conf, echoapi.NewClaims(app.conf, "ext", "", "", "", -time.Minute))
	require.NoError(t, err)
	otherConf := core.NewTestConfig()
	otherConf.SecretKey = "another-secret"
	forged, err := echoapi.GenerateToken(otherConf, echoapi.NewClaims(otherConf, "ext", "", "", echoapi.RoleAdmin, time.Hour))
	require.NoError(t, err)
	noSubject, err := echoapi.GenerateToken(app.conf, echoapi.NewClaims(app.conf, "", "", "", "", time.Hour))
	require.NoError(t, err)

	invalid := marshallObj(t, httpErr{Error: "invalid or expired jwt"})
	runHTTPTests(t, app, []httpTest{
		{name: "missing token", method: http.MethodGet, path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "malformed token", method: http.MethodGet, path: "/v1/courses", token: "lol", wantCode: http.StatusUnauthorized, wantData: invalid},
		{name: "expired token", method: http.MethodGet, path: "/v1/courses", token: expired, wantCode: http.StatusUnauthorized, wantData: invalid},
		{name: "wrong secret", method: http.MethodGet, path: "/v1/courses", token: forged, wantCode: http.StatusUnauthorized, wantData: invalid},
		{name: "no subject", method: http.MethodGet, path: "/v1/courses", token: noSubject, wantCode: http.StatusUnauthorized, wantData: invalid},
		{name: "valid", method: http.MethodGet, path: "/v1/courses", token: getToken(t, app.conf, "ext", ""), wantCode: http.StatusOK, wantData: []byte(`[]`)},
	})
}
