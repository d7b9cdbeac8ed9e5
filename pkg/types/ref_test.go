package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRef(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare id", "abc-123", "abc-123"},
		{"document path", "locations/abc-123", "abc-123"},
		{"nested path", "projects/p/databases/d/documents/locations/abc-123", "abc-123"},
		{"surrounding whitespace", "  abc-123 ", "abc-123"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewRef(tc.in).String())
		})
	}
}

func TestRefIsZero(t *testing.T) {
	assert.True(t, NewRef("").IsZero())
	assert.True(t, NewRef("locations/").IsZero())
	assert.False(t, NewRef("abc").IsZero())
}

func TestNewRefPtr(t *testing.T) {
	assert.Nil(t, NewRefPtr(nil))

	empty := ""
	assert.Nil(t, NewRefPtr(&empty))

	path := "users/U1"
	got := NewRefPtr(&path)
	if assert.NotNil(t, got) {
		assert.Equal(t, "U1", got.String())
	}
}
