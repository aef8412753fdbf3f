package sysiphe_test

import (
	"testing"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sysiphe.Errorf(sysiphe.ENOTFOUND, "target %q not found", "test")

	assert.Equal(t, sysiphe.ENOTFOUND, sysiphe.ErrorCode(err))
	assert.Equal(t, "target \"test\" not found", sysiphe.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sysiphe.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sysiphe.ErrorMessage(nil))
}
