package alog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorWrapsSentinel(t *testing.T) {
	err := newConfigError("level", "unknown severity name: bogus")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "level")
	assert.Contains(t, err.Error(), "bogus")
}

func TestIoErrorWrapsSentinelAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := newIoError("write", "/tmp/app.log", cause)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/app.log")
}

func TestCombineErrorsBothNil(t *testing.T) {
	assert.NoError(t, combineErrors(nil, nil))
}

func TestCombineErrorsOneNil(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, err, combineErrors(err, nil))
	assert.Equal(t, err, combineErrors(nil, err))
}

func TestCombineErrorsBothSet(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")
	combined := combineErrors(err1, err2)
	assert.ErrorIs(t, combined, err1)
	assert.ErrorIs(t, combined, err2)
}
