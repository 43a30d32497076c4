package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	id := New()
	assert.True(t, IsValid(id))
	assert.Equal(t, id, Sanitize(" "+id+" "))

	for _, bad := range []string{"", "abc", "not a uuid\r\nX-Injected: 1"} {
		got := Sanitize(bad)
		assert.True(t, IsValid(got))
		assert.NotEqual(t, bad, got)
	}
}
