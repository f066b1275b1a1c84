package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Énergie Hijau!!", 0, "energie-hijau"},
		{"  --Bank   Sampah--  ", 0, "bank-sampah"},
		{"!!!", 0, "item"},
		{"abcdef-ghij", 7, "abcdef"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in, tt.max), tt.in)
	}
}
