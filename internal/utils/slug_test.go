package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kite", "kite"},
		{"Rainbow Kite XL", "rainbow-kite-xl"},
		{"Piñatas y Globos", "pinatas-y-globos"},
		{"Cumpleaños  ¡Feliz!", "cumpleanos-feliz"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"100% algodón", "100-algodon"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "in=%q", tt.in)
	}
}
