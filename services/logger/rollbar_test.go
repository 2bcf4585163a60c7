package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := RollbarLogger{}
	err := errors.New("boom")
	extras := map[string]interface{}{"teacher": "t1"}

	got := l.prepare("msg", []interface{}{err, 42, extras, "dropped"})
	assert.Equal(t, []interface{}{"msg", err, extras}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "TEST : ", 0), core.NewTestConfig())
	l.Enable(false)

	l.Info("hello", errors.New("boom"))
	assert.Equal(t, "TEST : hello\nTEST : boom\n", buf.String())
}
