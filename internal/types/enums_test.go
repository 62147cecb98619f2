package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("owner"))
	assert.False(t, IsValidRole(""))
}

func TestIsValidSubmissionStatus(t *testing.T) {
	for _, s := range ValidSubmissionStatuses {
		assert.True(t, IsValidSubmissionStatus(s), s)
	}
	assert.False(t, IsValidSubmissionStatus("archived"))
}
