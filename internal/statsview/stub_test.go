//go:build !statsview

package statsview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStub(t *testing.T) {
	var buf bytes.Buffer
	Launch(&buf)
	assert.False(t, Available())
	assert.Zero(t, buf.Len())
}
