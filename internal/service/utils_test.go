package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "What did he build?", sanitizeUTF8("What did he build?"))
	assert.Equal(t, "Jordan’s role", sanitizeUTF8("Jordan’s role"))
	assert.Equal(t, "bad bytes", sanitizeUTF8("bad\xff\xfe bytes"))
}
