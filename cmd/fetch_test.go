package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSavings(t *testing.T) {
	tests := []struct {
		name string
		tons float64
		want string
	}{
		{name: "grouped_thousands", tons: 1234.5678, want: "1,234.568 tCO2 saved"},
		{name: "small_value", tons: 0.03241, want: "0.032 tCO2 saved"},
		{name: "zero", tons: 0, want: "0.000 tCO2 saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSavings(tt.tons))
		})
	}
}
