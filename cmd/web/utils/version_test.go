package utils

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision(t *testing.T) {
	assert.Equal(t, "dev", revision(nil))
	assert.Equal(t, "0123456", revision([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
	}))
	assert.Equal(t, "abc-dirty", revision([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc"},
		{Key: "vcs.modified", Value: "true"},
	}))
}
