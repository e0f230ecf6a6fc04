package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDivision(t *testing.T) {
	tests := []struct {
		raw  string
		want Division
	}{
		{"toys", DivisionToys},
		{"party", DivisionParty},
		{"", DefaultDivision},
		{"TOYS", DefaultDivision},
		{"garden", DefaultDivision},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDivision(tt.raw), "raw=%q", tt.raw)
	}
}

func TestDivisionValid(t *testing.T) {
	assert.True(t, DivisionToys.Valid())
	assert.True(t, DivisionParty.Valid())
	assert.False(t, Division("").Valid())
	assert.False(t, Division("other").Valid())
}
