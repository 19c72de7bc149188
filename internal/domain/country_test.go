package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "fra", "FRA"},
		{"mixed case", "eNg", "ENG"},
		{"surrounding whitespace", "  GER ", "GER"},
		{"empty", "", ""},
		{"sentinel untouched", "999", "999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}

func TestValidCountryCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"three letters", "FRA", true},
		{"sentinel 999", "999", true},
		{"two letters", "FR", false},
		{"four letters", "FRAN", false},
		{"empty", "", false},
		{"numeric but wrong length", "99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCountryCode(tt.code))
		})
	}
}
