package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewWithLevel("test", "debug")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"station": 3})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerBadLevelFallsBack(t *testing.T) {
	l := NewWithLevel("test", "loud")
	assert.NotNil(t, l)
	l.Infof("still works")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("x")
	l.Debugw("x", nil)
	l.Infof("x")
	l.Infow("x", nil)
	l.Warnf("x")
	l.Errorf("x")
}
