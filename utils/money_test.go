package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "$0"},
		{"under a thousand", 500, "$500"},
		{"exact thousand", 1000, "$1.000"},
		{"typical price", 12500, "$12.500"},
		{"millions", 1234567, "$1.234.567"},
		{"negative", -12500, "-$12.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCOP(tt.amount))
		})
	}
}
