package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/kelasdev/kelas/apps/api/echo"
	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
)

func createCourse(t *testing.T, app testApp, title string) course.Course {
	t.Helper()
	c, err := app.courseSvc.Create(context.Background(), course.NewCourse{
		Title: title, Difficulty: course.Beginner, Language: "javascript",
	})
	require.NoError(t, err)
	return c
}

func TestCourseApi_Create(t *testing.T) {
	app := setup(t)
	adminToken := getToken(t, app.conf, "admin", echoapi.RoleAdmin)
	studentToken := getToken(t, app.conf, "student", "")

	runHTTPTests(t, app, []httpTest{
		{
			name: "admin required", method: http.MethodPost, path: "/v1/courses", token: studentToken,
			body: []byte(`{"title":"Go"}`), wantCode: http.StatusForbidden, wantData: marshallObj(t, errForbidden),
		},
		{
			name: "invalid JSON", method: http.MethodPost, path: "/v1/courses", token: adminToken,
			body: []byte(`{"title":`), wantCode: http.StatusBadRequest,
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/courses", token: adminToken,
			body: []byte(`{"title":"  ","difficulty":"expert"}`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"title":      "this field cannot be blank",
				"difficulty": "difficulty must be one of [beginner intermediate advanced]",
				"language":   "this field cannot be blank",
			}),
		},
	})

	rec := app.do(http.MethodPost, "/v1/courses", adminToken,
		[]byte(`{"title":"Intro to JS","description":"Basics","difficulty":"beginner","language":"javascript"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created course.Course
	unmarshall(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsPublished)
	assert.Empty(t, created.Modules)

	rec = app.do(http.MethodGet, "/v1/courses", studentToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []course.Course
	unmarshall(t, rec, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, created.ID, courses[0].ID)

	rec = app.do(http.MethodGet, "/v1/courses/"+created.ID, studentToken)
	require.Equal(t, http.StatusOK, rec.Code)

	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "course not found"})},
		app.do(http.MethodGet, "/v1/courses/missing", studentToken))
}

func TestCourseApi_EditModules(t *testing.T) {
	app := setup(t)
	adminToken := getToken(t, app.conf, "admin", echoapi.RoleAdmin)
	c := createCourse(t, app, "Editor")
	base := "/v1/courses/" + c.ID + "/modules"

	addModule := func(t *testing.T, typ content.Type) echoapi.ModuleResponse {
		t.Helper()
		rec := app.do(http.MethodPost, base, adminToken, marshallObj(t, echoapi.AddModuleRequest{Type: typ}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res echoapi.ModuleResponse
		unmarshall(t, rec, &res)
		return res
	}

	intro := addModule(t, content.TypeIntroduction)
	assert.Equal(t, "New Introduction & Background", intro.Module.Title)
	assert.Equal(t, 0, intro.Module.Order)
	mc := addModule(t, content.TypeMultipleChoice)
	assert.Equal(t, 1, mc.Module.Order)
	require.Len(t, mc.Course.Modules, 2)

	t.Run("unknown type", func(t *testing.T) {
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"type":"unknown module type"}`)},
			app.do(http.MethodPost, base, adminToken, []byte(`{"type":"essay"}`)))
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"type":"this field is required"}`)},
			app.do(http.MethodPost, base, adminToken, []byte(`{}`)))
	})

	t.Run("update title and content", func(t *testing.T) {
		rec := app.do(http.MethodPatch, base+"/"+mc.Module.ID, adminToken,
			[]byte(`{"title":"Quiz 1","content":{"question":"What is 2+2?","time_limit":30}}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got course.Course
		unmarshall(t, rec, &got)
		m, ok := got.Module(mc.Module.ID)
		require.True(t, ok)
		assert.Equal(t, "Quiz 1", m.Title)
		q := m.Content.(content.MultipleChoice)
		assert.Equal(t, "What is 2+2?", q.Question)
		require.NotNil(t, q.TimeLimit)
		assert.Equal(t, 30, *q.TimeLimit)
		assert.Len(t, q.Options, 2, "fields absent from the patch are kept")
	})

	t.Run("invalid content is rejected", func(t *testing.T) {
		rec := app.do(http.MethodPatch, base+"/"+mc.Module.ID, adminToken, []byte(`{"content":{"question":" "}}`))
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"modules[1].content.question":"this field cannot be blank"}`),
		}, rec)
	})

	t.Run("stale module id is a no-op", func(t *testing.T) {
		before, err := app.courseSvc.Get(context.Background(), c.ID)
		require.NoError(t, err)
		rec := app.do(http.MethodDelete, base+"/stale", adminToken)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, before)}, rec)
	})

	t.Run("move", func(t *testing.T) {
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest},
			app.do(http.MethodPost, base+"/"+mc.Module.ID+"/move", adminToken, []byte(`{"direction":"left"}`)))

		rec := app.do(http.MethodPost, base+"/"+mc.Module.ID+"/move", adminToken, []byte(`{"direction":"up"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got course.Course
		unmarshall(t, rec, &got)
		require.Len(t, got.Modules, 2)
		assert.Equal(t, mc.Module.ID, got.Modules[0].ID)
		assert.Equal(t, 0, got.Modules[0].Order)
		assert.Equal(t, intro.Module.ID, got.Modules[1].ID)
		assert.Equal(t, 1, got.Modules[1].Order)
	})

	t.Run("sub-editor ops", func(t *testing.T) {
		path := base + "/" + mc.Module.ID + "/ops"

		rec := app.do(http.MethodPost, path, adminToken, []byte(`{"op":"add_option","text":"Maybe"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res echoapi.OpResponse
		unmarshall(t, rec, &res)
		assert.True(t, res.Changed)
		optID := res.NewID
		require.NotEmpty(t, optID)

		rec = app.do(http.MethodPost, path, adminToken, marshallObj(t, course.Op{Name: course.OpSelectCorrectOption, TargetID: optID}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res = echoapi.OpResponse{}
		unmarshall(t, rec, &res)
		m, _ := res.Course.Module(mc.Module.ID)
		q := m.Content.(content.MultipleChoice)
		require.Len(t, q.Options, 3)
		var correct []string
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct = append(correct, opt.ID)
			}
		}
		assert.Equal(t, []string{optID}, correct)

		rec = app.do(http.MethodPost, path, adminToken, []byte(`{"op":"remove_option","target_id":"stale"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		res = echoapi.OpResponse{}
		unmarshall(t, rec, &res)
		assert.False(t, res.Changed)

		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "unknown module operation"})},
			app.do(http.MethodPost, path, adminToken, []byte(`{"op":"explode"}`)))
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"op":"this field is required"}`)},
			app.do(http.MethodPost, path, adminToken, []byte(`{}`)))
	})

	t.Run("unknown course", func(t *testing.T) {
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound},
			app.do(http.MethodPost, "/v1/courses/missing/modules", adminToken, []byte(`{"type":"introduction"}`)))
	})
}

func TestCourseApi_SaveContent(t *testing.T) {
	app := setup(t)
	adminToken := getToken(t, app.conf, "admin", echoapi.RoleAdmin)
	c := createCourse(t, app, "Bulk")
	path := "/v1/courses/" + c.ID + "/content"

	body := []byte(`{"modules":[
		{"id":"b","type":"code-question","title":"Code","order":5,"content":{"question":"Print hi","language":"python","hints":[],"test_cases":[]}},
		{"id":"a","type":"drag-drop","title":"Sort","order":2,"content":{
			"question":"Match","items":[{"id":"i1","text":"x"}],
			"drop_zones":[{"id":"z1","label":"Z","correct_items":["i1"]}],"instructions":"Drag"}}
	]}`)
	rec := app.do(http.MethodPut, path, adminToken, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved course.Course
	unmarshall(t, rec, &saved)
	require.Len(t, saved.Modules, 2)
	assert.Equal(t, "a", saved.Modules[0].ID)
	assert.Equal(t, 0, saved.Modules[0].Order)
	assert.Equal(t, "b", saved.Modules[1].ID)
	assert.Equal(t, 1, saved.Modules[1].Order)
	assert.Equal(t, c.Title, saved.Title)

	runHTTPTests(t, app, []httpTest{
		{
			name: "zone referencing an unknown item", method: http.MethodPut, path: path, token: adminToken,
			body: []byte(`{"modules":[{"id":"a","type":"drag-drop","content":{"question":"Match","items":[],
				"drop_zones":[{"id":"z1","label":"Z","correct_items":["ghost"]}]}}]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown module type", method: http.MethodPut, path: path, token: adminToken,
			body: []byte(`{"modules":[{"id":"a","type":"essay","content":{}}]}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown course", method: http.MethodPut, path: "/v1/courses/missing/content", token: adminToken,
			body: []byte(`{"modules":[]}`), wantCode: http.StatusNotFound,
		},
	})

	got, err := app.courseSvc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{got.Modules[0].ID, got.Modules[1].ID}, "rejected saves leave the course untouched")
}
