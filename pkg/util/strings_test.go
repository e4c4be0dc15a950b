package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Rajdhani Express", "rajdHANI"))
	assert.False(t, ContainsFold("Rajdhani Express", "shatabdi"))
}
