package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelasdev/kelas/core"
)

func TestRollbarLogger_Print(t *testing.T) {
	var buf bytes.Buffer
	conf := core.NewTestConfig()
	logger := NewRollbarLogger(log.New(&buf, "", 0), conf)

	logger.Error("saving onboarding failed", errors.New("db down"), core.Person{ID: "ext-1", Email: "a@kelas.test"})

	out := buf.String()
	assert.Contains(t, out, "saving onboarding failed\n")
	assert.Contains(t, out, "db down\n")
	assert.NotContains(t, out, "a@kelas.test")
}

func TestRollbarLogger_Prepare(t *testing.T) {
	logger := NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), core.NewTestConfig())
	extra := map[string]interface{}{"course": "c1"}

	args := logger.prepare("msg", []interface{}{core.Person{ID: "ext-1"}, extra, core.Person{ID: "ext-2"}})
	assert.Equal(t, []interface{}{"msg", extra}, args)
}
